package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "index <path>",
		Short: "Archive chat exports under a file or directory for search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if lenient {
				cfg.Strict = false
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", args[0])

			load := func(path string) (*derive.Conversation, error) {
				return loadConversation(cfg, path, false)
			}
			stats, err := index.IndexAll(db, args[0], load, logger)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "Skip malformed entries instead of failing the file")

	return cmd
}
