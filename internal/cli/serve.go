package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/internal/server"
	"github.com/reeflab/reefplan/pkg/cache"
	"github.com/reeflab/reefplan/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		cacheBackend string
		redisURL     string
		mongoURL     string
		mongoDB      string
		scope        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning pipeline as an HTTP API",
		Long: `Run the planning pipeline as an HTTP API.

The serve command starts an HTTP server exposing the pipeline:

  GET  /healthz    liveness probe
  GET  /version    build information
  POST /api/solve  solve the allocation model for a scenario
  POST /api/plan   run the full solve, layout, and render pipeline

Request bodies mirror the pipeline options; artifact bytes in responses
are base64-encoded.

The cache backend defaults to the local file cache. For multi-replica
deployments use --cache redis or --cache mongo with a shared backend,
and --scope to namespace keys per deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveConfig{
				addr:         addr,
				cacheBackend: cacheBackend,
				redisURL:     redisURL,
				mongoURL:     mongoURL,
				mongoDB:      mongoDB,
				scope:        scope,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheBackend, "cache", "file", "cache backend: file, redis, mongo, none")
	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379/0", "Redis URL for --cache redis")
	cmd.Flags().StringVar(&mongoURL, "mongo-url", "mongodb://localhost:27017", "MongoDB URI for --cache mongo")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database for --cache mongo")
	cmd.Flags().StringVar(&scope, "scope", "", "key namespace for shared cache backends")

	return cmd
}

// serveConfig bundles the serve command flags.
type serveConfig struct {
	addr         string
	cacheBackend string
	redisURL     string
	mongoURL     string
	mongoDB      string
	scope        string
}

// runServe builds the cache backend and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	store, err := c.serveCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.scope != "" {
		keyer = cache.NewScopedKeyer(cfg.scope, keyer)
	}

	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           server.New(runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.addr, "cache", cfg.cacheBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache builds the cache backend selected by --cache. Remote backends
// are dialed with a retry so a slow Redis or MongoDB start doesn't kill
// the server.
func (c *CLI) serveCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	switch cfg.cacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		var store cache.Cache
		err := cache.RetryWithBackoff(ctx, 3, time.Second, func() error {
			var err error
			store, err = cache.NewRedisCache(ctx, cfg.redisURL)
			return err
		})
		return store, err
	case "mongo":
		var store cache.Cache
		err := cache.RetryWithBackoff(ctx, 3, time.Second, func() error {
			var err error
			store, err = cache.NewMongoCache(ctx, cfg.mongoURL, cfg.mongoDB, "artifacts")
			return err
		})
		return store, err
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected file, redis, mongo, or none)", cfg.cacheBackend)
	}
}
