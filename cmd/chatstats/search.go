package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/Zuo-Peng/chatstats/internal/search"
	"github.com/Zuo-Peng/chatstats/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var transcript, sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across archived messages",
		Long: `Search archived messages using FTS5. Output is TSV for fzf integration:
  transcriptKey, seq, timestamp, sender, snippet

Recommended shell function (add to .zshrc):
  chatf() {
    chatstats search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview 'chatstats preview {1} --hit {2} --context 5 --query {q}' \
      --preview-window=right:60%:wrap \
      --bind 'enter:execute(chatstats open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			opts := search.Options{
				Transcript: transcript,
				Sender:     sender,
				Since:      since,
				Limit:      limit,
			}

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.RunSearch(db, args[0], opts, os.Stdout)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			flat := strings.NewReplacer("\t", " ", "\n", " ")
			for _, r := range results {
				// first two fields (transcriptKey, seq) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s%s%s\t%s\n",
					r.TranscriptKey,
					r.Seq,
					sColorDim, r.Ts, sColorReset,
					sColorBlue, flat.Replace(r.Sender), sColorReset,
					colorizeSnippet(flat.Replace(r.Snippet)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&transcript, "transcript", "", "Limit to one transcript key")
	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender name")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages sent since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
