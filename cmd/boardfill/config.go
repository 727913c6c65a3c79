package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/metalagman/boardfill/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "BOARDFILL"

// loadConfig resolves defaults, the optional config file and BOARDFILL_*
// environment overrides. A missing file is an error only when --config points
// somewhere other than the default path.
func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = config.DefaultPath
	}

	for key, value := range config.Defaults().Settings() {
		viper.SetDefault(key, value)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := config.ValidateFile(data); err != nil {
			return config.Config{}, fmt.Errorf("%s: %w", path, err)
		}
		viper.SetConfigFile(path)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == config.DefaultPath:
		log.Debug().Str("path", path).Msg("no config file, using defaults")
	default:
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(config.DecodeHook())); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func viperConfigPath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}
	return config.DefaultPath
}
