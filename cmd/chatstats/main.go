package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/lang"
	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	logger  = logrus.New()
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chatstats",
		Short:         "Chat Stats - statistics for two-person WhatsApp chat exports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, diagnose(err))
		os.Exit(1)
	}
}

// diagnose turns a failure into a one-line message naming its kind.
func diagnose(err error) string {
	var entryErr *parse.EntryError
	switch {
	case errors.As(err, &entryErr):
		return fmt.Sprintf("chatstats: malformed entry at line %d: %q is not an export timestamp (rerun with --lenient to skip it)",
			entryErr.Line, entryErr.Raw)
	case errors.Is(err, derive.ErrEmptyTranscript):
		return "chatstats: no messages found, is this a WhatsApp export? (" + err.Error() + ")"
	case errors.Is(err, derive.ErrTooFewParticipants):
		return "chatstats: only one participant found, a two-person chat is required (" + err.Error() + ")"
	case errors.Is(err, derive.ErrTooManyParticipants):
		return "chatstats: group chats are not supported (" + err.Error() + ")"
	case errors.Is(err, lang.ErrUnsupportedLanguage):
		return "chatstats: " + err.Error()
	case errors.Is(err, fs.ErrNotExist):
		return "chatstats: file not found: " + err.Error()
	default:
		return "chatstats: " + err.Error()
	}
}
