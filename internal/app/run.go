package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/relay"
)

// Run starts the background surfaces (health check server, event relay) and
// blocks until ctx is done, then shuts them down.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthCheckServer(ctx)

	if a.config.RelayURL != "" {
		r, err := relay.Dial(ctx, relay.Config{URL: a.config.RelayURL, Namespace: a.config.RelayNamespace})
		if err != nil {
			return errors.Join(fmt.Errorf("failed to start event relay: %w", err), a.closeHealthCheckServer(ctx))
		}
		a.relay = r
		a.events.Subscribe(r.Listener())
	}

	a.logger.Info("🎨 Canvas ready.", "nodes", a.Inspect().Nodes)
	<-ctx.Done()

	var errs []error
	if a.relay != nil {
		errs = append(errs, a.relay.Close())
	}
	errs = append(errs, a.closeHealthCheckServer(ctx))
	a.logger.Debug("App.Run method finished.")
	return errors.Join(errs...)
}
