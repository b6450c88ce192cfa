package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/purgeplan/config"
	"github.com/katalvlaran/purgeplan/metrics"
	"github.com/katalvlaran/purgeplan/server"
	"github.com/katalvlaran/purgeplan/store"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		addr         string
		solveTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			if addr == "" {
				addr = cfg.Server.Addr
			}

			m := metrics.NewCollector()
			runner, err := newRunner(ctx, false, m)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			api := &server.Server{
				Runner:       runner,
				Store:        st,
				Metrics:      m,
				Logger:       logger,
				Defaults:     cfg.Options(),
				SolveTimeout: solveTimeout,
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Info("listening", "addr", addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&solveTimeout, "solve-timeout", 30*time.Second, "upper bound per request")
	return cmd
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store.Backend == config.StoreMongo {
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
	}
	return store.NewMemoryStore(), nil
}
