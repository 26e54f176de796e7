// Package cli implements the searchresult command line tool.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrfta/searchresult-go"
	"github.com/nrfta/searchresult-go/internal/config"
	"github.com/nrfta/searchresult-go/source"
)

// Options configures the root command.
type Options struct {
	// EnvPrefix prefixes configuration environment variables. Defaults to
	// config.DefaultEnvPrefix.
	EnvPrefix string

	// OpenStore overrides how the record store is opened. Used by tests.
	OpenStore func(ctx context.Context, cfg *config.Config, log *zap.Logger) (source.Store, func() error, error)

	// NewLogger overrides how the logger is built. Used by tests.
	NewLogger func(cfg config.LogConfig) (*zap.Logger, error)
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	opts       Options
	configFile string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the searchresult command with its list and write subcommands.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = config.DefaultEnvPrefix
	}
	if opts.OpenStore == nil {
		opts.OpenStore = openStore
	}
	if opts.NewLogger == nil {
		opts.NewLogger = config.NewLogger
	}

	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:           "searchresult",
		Short:         "Inspect and seed diagnostic search results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config-file", "c",
		config.ConfigFileFromEnv(opts.EnvPrefix), "config file path")

	rootCmd.AddCommand(
		newListCommand(a),
		newWriteCommand(a),
	)

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.NewLoader(a.configFile, a.opts.EnvPrefix).Load()
	if err != nil {
		return err
	}

	logger, err := a.opts.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// withStore opens the configured store, runs fn and closes the store again.
func (a *app) withStore(ctx context.Context, fn func(store source.Store) error) (err error) {
	store, closeStore, err := a.opts.OpenStore(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(store)
}

// resolveIdentifier maps the short catalog names to their identifiers.
func resolveIdentifier(name string) string {
	switch name {
	case "categories", "category":
		return searchresult.CategoryURLKeyIdentifier
	case "products", "product":
		return searchresult.ProductURLPathIdentifier
	}
	return name
}
