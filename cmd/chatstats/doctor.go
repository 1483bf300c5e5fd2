package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, languages, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Language:      %s\n", cfg.Language)
			fmt.Printf("  Top words:     %d\n", cfg.TopWords)
			fmt.Printf("  Streak limit:  %d\n", cfg.StreakLimit)
			fmt.Printf("  Strict:        %t\n", cfg.Strict)
			fmt.Printf("  Trim trailing: %t\n", cfg.SpecificPreprocessing)
			if cfg.StopwordsDir != "" {
				checkDir("Stop words", cfg.StopwordsDir)
			}

			fmt.Println("\n=== Languages ===")
			reg, err := cfg.Registry()
			if err != nil {
				fmt.Printf("  error: %v\n", err)
			} else {
				fmt.Printf("  Available: %s\n", strings.Join(reg.Names(), ", "))
				if err := cfg.Validate(reg); err != nil {
					fmt.Printf("  Status: INVALID (%v)\n", err)
				} else {
					fmt.Println("  Status: OK")
				}
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatstats index <path>' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			transcripts, err := db.TranscriptCount()
			if err != nil {
				return fmt.Errorf("count transcripts: %w", err)
			}
			messages, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Printf("  Transcripts: %d\n", transcripts)
			fmt.Printf("  Messages:    %d\n", messages)

			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messages {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messages, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", float64(info.Size())/1024/1024)
			}
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
