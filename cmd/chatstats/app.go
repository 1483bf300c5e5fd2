package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatstats/internal/config"
	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/sirupsen/logrus"
)

// loadConfig reads the configuration and sets up the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.LogLevel)
	return cfg, nil
}

func setupLogger(level string) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("log_level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
}

// loadConversation reads, parses and derives one transcript export.
// specific_preprocessing trims the trailing chunk and replaces participant
// names with user_1/user_2.
func loadConversation(cfg *config.Config, path string, pseudonymize bool) (*derive.Conversation, error) {
	opts := parse.Options{TrimTrailing: cfg.SpecificPreprocessing}
	if !cfg.Strict {
		opts.Policy = parse.Lenient
	}

	tr, err := parse.ReadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	res, err := parse.Parse(tr)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	flog := logger.WithField("file", path)
	for _, e := range res.Skipped {
		flog.WithFields(logrus.Fields{
			"entry": e.Index,
			"line":  e.Line,
			"raw":   e.Raw,
		}).Warn("skipped malformed entry")
	}
	flog.WithFields(logrus.Fields{
		"chunks":  res.Stats.Chunks,
		"parsed":  res.Stats.Parsed,
		"dropped": res.Stats.Dropped,
		"skipped": res.Stats.Skipped,
	}).Debug("parsed transcript")

	conv, err := derive.Derive(res.Entries, derive.Options{
		Pseudonymize: pseudonymize || cfg.SpecificPreprocessing,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conv, nil
}
