package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/metalagman/boardfill/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command.
func Execute() error {
	cmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return cmd.Execute()
}

func newRootCmd() (*cobra.Command, error) {
	var (
		cfgFile string
		envFile string
		debug   bool
	)
	cmd := &cobra.Command{
		Use:          "boardfill",
		Short:        "boardfill creates labeled Trello cards with checklists from a task catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug)
			loadDotEnv(envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with Trello credentials")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config")); err != nil {
		return nil, fmt.Errorf("bind config flag: %w", err)
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(planCmd())
	cmd.AddCommand(listsCmd())
	cmd.AddCommand(runsCmd())
	cmd.AddCommand(initCmd())
	return cmd, nil
}

// loadDotEnv loads credentials from path without overriding variables that
// are already set.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.Warn().Err(err).Str("path", path).Msg("load env file")
		return
	}
	log.Debug().Str("path", path).Msg("loaded env file")
}
