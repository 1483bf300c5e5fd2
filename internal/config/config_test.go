package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/chatstats/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHATSTATS_CONFIG", "")

	cfg, err := load(home)
	require.NoError(t, err)
	assert.Equal(t, "french", cfg.Language)
	assert.Equal(t, 30, cfg.TopWords)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.SpecificPreprocessing)
	assert.Equal(t, 10, cfg.StreakLimit)
	assert.Equal(t, filepath.Join(home, ".config", "chatstats", "chatstats.db"), cfg.DBPath)
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "chatstats")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
language = "english"
top_words = 12
specific_preprocessing = true
db_path = "~/data/chat.db"
stopwords_dir = "~/stop"
`), 0o644))

	t.Setenv("CHATSTATS_CONFIG", "")
	t.Setenv("CHATSTATS_TOP_WORDS", "7")
	t.Setenv("CHATSTATS_STRICT", "false")

	cfg, err := load(home)
	require.NoError(t, err)
	assert.Equal(t, "english", cfg.Language)
	assert.Equal(t, 7, cfg.TopWords)
	assert.True(t, cfg.SpecificPreprocessing)
	assert.False(t, cfg.Strict)
	assert.Equal(t, filepath.Join(home, "data", "chat.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, "stop"), cfg.StopwordsDir)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("CHATSTATS_CONFIG", "")
	t.Setenv("CHATSTATS_TOP_WORDS", "many")
	_, err := load(t.TempDir())
	assert.ErrorContains(t, err, "CHATSTATS_TOP_WORDS")
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("language = "), 0o644))
	t.Setenv("CHATSTATS_CONFIG", path)

	_, err := load(t.TempDir())
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	reg := lang.Default()

	cfg := &Config{Language: "french", TopWords: 30}
	assert.NoError(t, cfg.Validate(reg))

	cfg.Language = "klingon"
	assert.ErrorIs(t, cfg.Validate(reg), lang.ErrUnsupportedLanguage)

	cfg.Language = "english"
	cfg.TopWords = 0
	assert.Error(t, cfg.Validate(reg))
}

func TestRegistry_LoadsStopwordsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spanish.txt"), []byte("el\nla\n"), 0o644))

	cfg := &Config{Language: "spanish", TopWords: 5, StopwordsDir: dir}
	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate(reg))
}
