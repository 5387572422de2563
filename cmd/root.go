// Package cmd contains all CLI commands for wikibrief
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"wikibrief/config"
)

var (
	logLevel string
	cfg      *config.Config
	logger   *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wikibrief",
	Short: "Wikipedia lookup proxy",
	Long: `wikibrief resolves a free-text query to a Wikipedia article and returns
its summary together with the first paragraphs of the introduction.

Example usage:
  wikibrief serve                      # Run the HTTP API
  wikibrief search tour eiffel         # Run one lookup and print the JSON payload
  wikibrief demo --url http://host:80  # Interactive client for a running server`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
}

// initConfig reads the environment and sets up the process logger.
func initConfig(w io.Writer) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err = newLogger(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		"action_api", cfg.ActionAPIURL,
		"rest_api", cfg.RestAPIURL,
		"extractor", cfg.Extractor,
		"paragraph_limit", cfg.ParagraphLimit,
		"event_sinks", cfg.Events.Sinks,
	)
	return nil
}

// newLogger builds a JSON or text slog logger at the given level.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL=%q", config.ErrInvalidValue, level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: LOG_FORMAT=%q", config.ErrInvalidValue, format)
	}
}
