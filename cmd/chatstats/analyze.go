package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func analyzeCmd() *cobra.Command {
	var format, language, table string
	var top, streaks int
	var specific, lenient, noTUI, pseudonymize bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Compute statistics for a two-person chat export",
		Long: `Parse a WhatsApp chat export and report message counts, activity
histograms, response times, silence streaks, deleted messages, missed
calls and the most common words of each participant.

Opens an interactive table browser when stdout is a terminal; prints
plain tables otherwise (or with --no-tui / --format).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("language") {
				cfg.Language = language
			}
			if flags.Changed("top") {
				cfg.TopWords = top
			}
			if flags.Changed("streaks") {
				cfg.StreakLimit = streaks
			}
			if flags.Changed("specific-preprocessing") {
				cfg.SpecificPreprocessing = specific
			}
			if lenient {
				cfg.Strict = false
			}

			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			reg, err := cfg.Registry()
			if err != nil {
				return err
			}
			if err := cfg.Validate(reg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			lng, err := reg.Lookup(cfg.Language)
			if err != nil {
				return err
			}

			conv, err := loadConversation(cfg, args[0], pseudonymize)
			if err != nil {
				return err
			}
			report, err := analytics.Build(conv, analytics.Options{
				Language:    lng,
				TopWords:    cfg.TopWords,
				StreakLimit: cfg.StreakLimit,
			})
			if err != nil {
				return err
			}
			logger.WithField("messages", report.Messages).Debug("report built")

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if table != "" {
				return printTable(report, table, f, isTTY)
			}
			if isTTY && !noTUI && !flags.Changed("format") {
				return tui.RunReport(report, os.Stdout)
			}
			return render.Report(os.Stdout, report, f, isTTY)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text/tsv/json)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Stop-word language (default from config)")
	cmd.Flags().IntVar(&top, "top", analytics.DefaultTopWords, "Most common words to show per participant")
	cmd.Flags().IntVar(&streaks, "streaks", analytics.DefaultStreakLimit, "Silence streaks to show (negative = all)")
	cmd.Flags().BoolVar(&specific, "specific-preprocessing", false, "Drop the final chunk and pseudonymize participants")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Skip malformed entries instead of failing")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print tables even on a terminal")
	cmd.Flags().BoolVar(&pseudonymize, "pseudonymize", false, "Replace participant names with user_1/user_2 (implied by --specific-preprocessing)")
	cmd.Flags().StringVar(&table, "table", "", "Print a single table by name")

	return cmd
}

func printTable(r *analytics.Report, name string, f render.Format, color bool) error {
	t, ok := r.Table(name)
	if !ok {
		var names []string
		for _, t := range r.Tables() {
			names = append(names, t.Name)
		}
		return fmt.Errorf("unknown table %q (available: %s)", name, strings.Join(names, ", "))
	}
	switch f {
	case render.FormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case render.FormatTSV:
		return render.TSV(os.Stdout, t)
	default:
		fmt.Print(render.Text(t, color))
		return nil
	}
}
