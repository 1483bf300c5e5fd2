package main

import (
	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/Zuo-Peng/chatstats/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var hitSeq int

	cmd := &cobra.Command{
		Use:   "open <transcriptKey>",
		Short: "Open the original export in $EDITOR at the hit line",
		Args:  cobra.ExactArgs(1),
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

			return open.OpenTranscript(db, args[0], hitSeq)
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message seq to jump to")

	return cmd
}
