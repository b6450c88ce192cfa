// Package cli implements the purgeplan command line.
//
// Commands:
//   - plan: solve a job file and print the plan
//   - group: print the grouping of a job only
//   - render: draw a plan as DOT or SVG
//   - serve: run the HTTP API
//   - version: print build information
//
// Every command accepts --config (TOML) and --verbose. Loggers travel
// through the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/purgeplan/cache"
	"github.com/katalvlaran/purgeplan/config"
	"github.com/katalvlaran/purgeplan/metrics"
	"github.com/katalvlaran/purgeplan/schedule"
)

// Build information, set with -ldflags "-X .../internal/cli.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree; logs go to logw.
func NewRootCommand(logw io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	root := &cobra.Command{
		Use:          "purgeplan",
		Short:        "purgeplan plans filament changes for multi-material prints",
		Long:         `purgeplan splits the filaments of a print between two nozzles and orders every layer so that the total flush (purge) volume is as small as possible.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("config: log level: %w", err)
			}
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logw, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("purgeplan %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(newPlanCmd())
	root.AddCommand(newGroupCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

const configKey ctxKey = 1

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// openCache returns the configured plan cache, or NullCache when disabled.
func openCache(ctx context.Context, cfg config.Config, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheFile:
		return cache.NewFileCache(cfg.Cache.Dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, "purgeplan:")
	}
	return cache.NewNullCache(), nil
}

// newRunner wires cache, metrics and logger from the command context.
func newRunner(ctx context.Context, noCache bool, m *metrics.Collector) (*schedule.Runner, error) {
	cfg := configFromContext(ctx)
	c, err := openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	r := schedule.NewRunner(c, m, loggerFromContext(ctx))
	if cfg.Cache.TTL.Duration > 0 {
		r.TTL = cfg.Cache.TTL.Duration
	}
	return r, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "purgeplan %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
		},
	}
}
