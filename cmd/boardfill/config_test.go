package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metalagman/boardfill/internal/batch"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T, configPath string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", configPath)
}

func TestLoadConfig_DefaultsWhenDefaultFileMissing(t *testing.T) {
	resetViper(t, config.DefaultPath)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestLoadConfig_UsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, writeTestFile(path, `board:
  id: board-x
  list_id: list-x
  fallback_color: sky
pacing:
  policy: token_bucket
  delay: 2s
  burst: 3
journal:
  enabled: false
retention:
  keep_days: 7
`))
	resetViper(t, path)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "board-x", cfg.Board.ID)
	assert.Equal(t, "list-x", cfg.Board.ListID)
	assert.Equal(t, board.ColorSky, cfg.Board.FallbackColor)
	assert.Equal(t, "Checklist", cfg.Board.ChecklistName)
	assert.Equal(t, batch.PolicyTokenBucket, cfg.Pacing.Policy)
	assert.Equal(t, 2*time.Second, cfg.Pacing.Delay)
	assert.Equal(t, 3, cfg.Pacing.Burst)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, 7, cfg.Retention.KeepDays)
	assert.Equal(t, 30*time.Second, cfg.Trello.Timeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	resetViper(t, config.DefaultPath)
	t.Setenv("BOARDFILL_BOARD_LIST_ID", "list-from-env")
	t.Setenv("BOARDFILL_PACING_DELAY", "50ms")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "list-from-env", cfg.Board.ListID)
	assert.Equal(t, 50*time.Millisecond, cfg.Pacing.Delay)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	resetViper(t, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, writeTestFile(path, "pacing:\n  policy: sometimes\n"))
	resetViper(t, path)

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config schema validation failed")
}

func TestLoadConfig_UnknownColor(t *testing.T) {
	resetViper(t, config.DefaultPath)
	t.Setenv("BOARDFILL_BOARD_FALLBACK_COLOR", "magenta")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magenta")
}

func writeTestFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
