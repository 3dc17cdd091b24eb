package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/roster/internal/server"
	"github.com/desertthunder/roster/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// Serve runs the read-only HTTP view until interrupted.
//
// With the file backend and server.watch enabled, collections are reloaded when another process writes them.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("watch") {
		cfg.Watch = cmd.Bool("watch")
	}

	router := server.NewRosterRouter(
		server.NewRosterHandler(r.store),
		server.Recoverer(r.logger),
		server.RequestLogger(r.logger),
		server.RateLimiter(cfg.RateLimit, cfg.Burst),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.Addr(), router, r.logger)
	})

	if fb, ok := r.store.Backend().(*store.FileBackend); ok && cfg.Watch {
		g.Go(func() error {
			return store.Watch(ctx, r.store, fb, r.logger, store.DefaultDebounce)
		})
	}

	return g.Wait()
}
