package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/sportsintel/internal/config"
	"github.com/leofalp/sportsintel/providers/observability/slogobs"
)

var (
	configPath   string
	providerName string
	modelName    string
	noSearch     bool
	jsonOutput   bool
	timeout      time.Duration
	logLevel     string
	logFormat    string

	cfg      *config.Config
	observer *slogobs.Observer
)

var rootCmd = &cobra.Command{
	Use:           "sportsintel",
	Short:         "Search-grounded sports briefings from an LLM",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		observer = slogobs.New(
			slogobs.WithFormat(slogobs.ParseFormat(cfg.LogFormat)),
			slogobs.WithLevel(slogobs.ParseLogLevel(cfg.LogLevel)),
			slogobs.WithOutput(cmd.ErrOrStderr()),
		)
		return nil
	},
}

// applyFlags overrides the loaded configuration with flags set explicitly.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.Provider = providerName
	}
	if flags.Changed("model") {
		c.Model = modelName
	}
	if flags.Changed("no-search") {
		c.WebSearch = !noSearch
	}
	if flags.Changed("timeout") {
		c.Timeout = timeout
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sportsintel/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: compact, pretty, json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(recoverCmd)
}
