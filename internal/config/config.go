// Package config provides configuration loading and validation for boardfill.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/metalagman/boardfill/internal/batch"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/catalog"
)

// Dir is the per-project state directory.
const Dir = ".boardfill"

// DefaultPath is the config file used when --config is not given.
var DefaultPath = filepath.Join(Dir, "config.yaml")

// Config is the root configuration.
type Config struct {
	Board     BoardConfig     `json:"board"     mapstructure:"board"     yaml:"board"`
	Trello    TrelloConfig    `json:"trello"    mapstructure:"trello"    yaml:"trello"`
	Pacing    PacingConfig    `json:"pacing"    mapstructure:"pacing"    yaml:"pacing"`
	Journal   JournalConfig   `json:"journal"   mapstructure:"journal"   yaml:"journal"`
	Retention RetentionPolicy `json:"retention" mapstructure:"retention" yaml:"retention"`
}

// BoardConfig selects the board and list cards go to.
type BoardConfig struct {
	ID            string      `json:"id"             mapstructure:"id"             yaml:"id"`
	ListID        string      `json:"list_id"        mapstructure:"list_id"        yaml:"list_id"`
	ChecklistName string      `json:"checklist_name" mapstructure:"checklist_name" yaml:"checklist_name"`
	FallbackColor board.Color `json:"fallback_color" mapstructure:"fallback_color" yaml:"fallback_color"`
}

// TrelloConfig configures the API client. Credentials are read from the named
// environment variables.
type TrelloConfig struct {
	BaseURL   string        `json:"base_url"    mapstructure:"base_url"    yaml:"base_url"`
	APIKeyEnv string        `json:"api_key_env" mapstructure:"api_key_env" yaml:"api_key_env"`
	TokenEnv  string        `json:"token_env"   mapstructure:"token_env"   yaml:"token_env"`
	Timeout   time.Duration `json:"timeout"     mapstructure:"timeout"     yaml:"timeout"`
}

// PacingConfig selects the delay policy between card creations.
type PacingConfig struct {
	Policy string        `json:"policy" mapstructure:"policy" yaml:"policy"`
	Delay  time.Duration `json:"delay"  mapstructure:"delay"  yaml:"delay"`
	Burst  int           `json:"burst"  mapstructure:"burst"  yaml:"burst"`
}

// JournalConfig controls the local run journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
	Path    string `json:"path"    mapstructure:"path"    yaml:"path"`
}

// RetentionPolicy defines how many journaled runs to keep.
type RetentionPolicy struct {
	KeepLast int `json:"keep_last,omitempty" mapstructure:"keep_last" yaml:"keep_last,omitempty"`
	KeepDays int `json:"keep_days,omitempty" mapstructure:"keep_days" yaml:"keep_days,omitempty"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Board: BoardConfig{
			ID:            catalog.DefaultBoardID,
			ListID:        catalog.DefaultListID,
			ChecklistName: "Checklist",
			FallbackColor: catalog.FallbackColor,
		},
		Trello: TrelloConfig{
			BaseURL:   "https://api.trello.com/1",
			APIKeyEnv: "TRELLO_API_KEY",
			TokenEnv:  "TRELLO_TOKEN",
			Timeout:   30 * time.Second,
		},
		Pacing: PacingConfig{
			Policy: batch.PolicyFixed,
			Delay:  batch.DefaultDelay,
			Burst:  1,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(Dir, "journal.db"),
		},
		Retention: RetentionPolicy{KeepLast: 50},
	}
}

// Settings flattens c into dotted viper keys, for registering defaults.
func (c Config) Settings() map[string]any {
	return map[string]any{
		"board.id":             c.Board.ID,
		"board.list_id":        c.Board.ListID,
		"board.checklist_name": c.Board.ChecklistName,
		"board.fallback_color": string(c.Board.FallbackColor),
		"trello.base_url":      c.Trello.BaseURL,
		"trello.api_key_env":   c.Trello.APIKeyEnv,
		"trello.token_env":     c.Trello.TokenEnv,
		"trello.timeout":       c.Trello.Timeout.String(),
		"pacing.policy":        c.Pacing.Policy,
		"pacing.delay":         c.Pacing.Delay.String(),
		"pacing.burst":         c.Pacing.Burst,
		"journal.enabled":      c.Journal.Enabled,
		"journal.path":         c.Journal.Path,
		"retention.keep_last":  c.Retention.KeepLast,
		"retention.keep_days":  c.Retention.KeepDays,
	}
}

// Validate checks semantic constraints the schema cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Board.ID) == "" {
		return fmt.Errorf("board.id is required")
	}
	if strings.TrimSpace(c.Board.ListID) == "" {
		return fmt.Errorf("board.list_id is required")
	}
	switch c.Pacing.Policy {
	case batch.PolicyFixed, batch.PolicyTokenBucket, batch.PolicyNone:
	default:
		return fmt.Errorf("pacing.policy %q is not one of fixed, token_bucket, none", c.Pacing.Policy)
	}
	if c.Pacing.Delay < 0 {
		return fmt.Errorf("pacing.delay must be >= 0")
	}
	if c.Pacing.Policy == batch.PolicyTokenBucket && c.Pacing.Burst < 1 {
		return fmt.Errorf("pacing.burst must be >= 1 for token_bucket")
	}
	if c.Trello.Timeout < 0 {
		return fmt.Errorf("trello.timeout must be >= 0")
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	if c.Retention.KeepLast < 0 || c.Retention.KeepDays < 0 {
		return fmt.Errorf("retention values must be >= 0")
	}
	return nil
}
