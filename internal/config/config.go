package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/chatstats/internal/lang"
	"github.com/joho/godotenv"
)

type Config struct {
	Language              string `toml:"language"`
	TopWords              int    `toml:"top_words"`
	SpecificPreprocessing bool   `toml:"specific_preprocessing"`
	Strict                bool   `toml:"strict"`
	StreakLimit           int    `toml:"streak_limit"`
	DBPath                string `toml:"db_path"`
	StopwordsDir          string `toml:"stopwords_dir"`
	LogLevel              string `toml:"log_level"`
}

// Load reads ~/.config/chatstats/config.toml (or $CHATSTATS_CONFIG) over the
// defaults, then applies CHATSTATS_* environment variables. A .env file in
// the working directory is loaded first if present.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	return load(home)
}

func load(home string) (*Config, error) {
	cfg := &Config{
		Language:    "french",
		TopWords:    30,
		Strict:      true,
		StreakLimit: 10,
		DBPath:      filepath.Join(home, ".config", "chatstats", "chatstats.db"),
		LogLevel:    "info",
	}

	cfgPath := os.Getenv("CHATSTATS_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "chatstats", "config.toml")
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.StopwordsDir = expandHome(cfg.StopwordsDir, home)

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	envStr("CHATSTATS_LANGUAGE", &cfg.Language)
	envStr("CHATSTATS_DB_PATH", &cfg.DBPath)
	envStr("CHATSTATS_STOPWORDS_DIR", &cfg.StopwordsDir)
	envStr("CHATSTATS_LOG_LEVEL", &cfg.LogLevel)
	if err := envInt("CHATSTATS_TOP_WORDS", &cfg.TopWords); err != nil {
		return err
	}
	if err := envInt("CHATSTATS_STREAK_LIMIT", &cfg.StreakLimit); err != nil {
		return err
	}
	if err := envBool("CHATSTATS_SPECIFIC_PREPROCESSING", &cfg.SpecificPreprocessing); err != nil {
		return err
	}
	return envBool("CHATSTATS_STRICT", &cfg.Strict)
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Registry returns the built-in languages plus any lists in StopwordsDir.
func (c *Config) Registry() (*lang.Registry, error) {
	reg := lang.Default()
	if c.StopwordsDir != "" {
		if err := reg.LoadDir(c.StopwordsDir); err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	}
	return reg, nil
}

// Validate checks settings before any transcript is read.
func (c *Config) Validate(reg *lang.Registry) error {
	if _, err := reg.Lookup(c.Language); err != nil {
		return err
	}
	if c.TopWords <= 0 {
		return errors.New("top_words must be positive")
	}
	return nil
}
