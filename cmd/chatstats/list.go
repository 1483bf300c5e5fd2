package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived transcripts, most recently active first",
		Args:  cobra.NoArgs,
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

			rows, err := db.ListTranscripts()
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(os.Stderr, "No transcripts archived (run 'chatstats index <path>' first).")
				return nil
			}

			t := analytics.Table{
				Name:    "transcripts",
				Title:   "Archived transcripts",
				Columns: []string{"key", "first_user", "second_user", "messages", "first_at", "last_at"},
			}
			for _, r := range rows {
				t.Rows = append(t.Rows, []string{
					r.Key, r.FirstUser, r.SecondUser, strconv.Itoa(r.MessageCount), r.FirstAt, r.LastAt,
				})
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				fmt.Print(render.Text(t, true))
				return nil
			}
			return render.TSV(os.Stdout, t)
		},
	}
}
