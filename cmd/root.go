// Package cmd contains the worktally CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/worktally/internal/config"
	"github.com/worktally/internal/humaans"
	"github.com/worktally/internal/storage"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "worktally",
	Short: "worktally – a Humaans working-time tracker",
	Long: `worktally tracks working time against a Humaans timesheet: clock in and
out, and report worked hours, needed hours and overtime for the current
day, week and month. Configuration lives in ~/.worktally/config.json.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(entriesCmd)
}

// setup loads and validates the config and builds the API client and data
// directory every command needs.
func setup(ctx context.Context) (config.Config, *humaans.Client, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, "", err
	}
	base, err := storage.BaseDir()
	if err != nil {
		return config.Config{}, nil, "", err
	}
	return cfg, humaans.NewClient(ctx, cfg.AccessToken, cfg.BaseURL), base, nil
}

// nowIn returns the current time in the configured timezone. A bad timezone
// falls back to the system's local time with a warning.
func nowIn(cfg config.Config) time.Time {
	if cfg.Timezone == "" {
		return time.Now()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Err(err).Msg("invalid timezone, using system local time")
		return time.Now()
	}
	return time.Now().In(loc)
}
