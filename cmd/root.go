package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/config"
	"github.com/jobmatchpro/backend/logger"
)

const (
	app = "jobmatch"
)

var (
	// Used for flags.
	cfgFile string
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "jobmatch turns a résumé into a ranked list of job listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+config.DefaultConfigName+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
}

// setup loads the environment and configuration, then builds the logger.
// Flags override the configured values only when set.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Server.Debug = debug
	}
	if flags.Changed("json") {
		cfg.Log.JSON = jsonLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Server.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	return cfg, log, nil
}
