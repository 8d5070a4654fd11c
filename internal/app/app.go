package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/interaction"
	"github.com/specialistvlad/nodecanvas/internal/layout"
	"github.com/specialistvlad/nodecanvas/internal/registry"
	"github.com/specialistvlad/nodecanvas/internal/relay"
)

// ErrLockContended is returned by Render when a frame was skipped.
var ErrLockContended = errors.New("canvas is busy")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	outW   io.Writer
	logger *slog.Logger
	config *Config

	model    *config.Model
	registry *registry.Registry
	events   *event.Broadcaster
	layout   *layout.Layout

	// setupErr holds the initial nodes and connections that were skipped.
	setupErr error

	graphMu sync.Mutex
	graph   *graph.Graph

	stateMu sync.Mutex
	engine  *interaction.Engine

	httpServer *http.Server
	relay      *relay.Relay
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	graphOpts  []graph.Option
	engineOpts []interaction.Option
}

// WithGraphOptions passes options through to graph.New.
func WithGraphOptions(opts ...graph.Option) Option {
	return func(o *appOptions) { o.graphOpts = append(o.graphOpts, opts...) }
}

// WithEngineOptions passes options through to interaction.NewEngine. They are
// applied after the default layout, so they may replace it.
func WithEngineOptions(opts ...interaction.Option) Option {
	return func(o *appOptions) { o.engineOpts = append(o.engineOpts, opts...) }
}

// NewApp is the constructor for the main application. It loads the canvas
// definition, registers its templates and places the initial nodes.
//
// Initial nodes or connections that cannot be placed do not fail startup;
// they are logged and reported by SetupErrors.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfgModel, err := loader.Load(ctx, appConfig.CanvasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	reg := registry.New()
	if err := reg.PopulateFromModel(ctx, cfgModel); err != nil {
		return nil, fmt.Errorf("failed to register templates: %w", err)
	}
	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	if err := validateGroups(reg, cfgModel.Groups); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	events := event.NewBroadcaster()
	events.Subscribe(logEvent)

	g := graph.New(reg, append([]graph.Option{graph.WithBroadcaster(events)}, o.graphOpts...)...)
	setupErr := g.Bootstrap(ctx, cfgModel.Nodes)
	if setupErr != nil {
		logger.Warn("Some initial nodes or connections were skipped.", "error", setupErr)
	}

	lay := layout.New(g)
	engineOpts := append([]interaction.Option{interaction.WithLayout(lay)}, o.engineOpts...)
	engine := interaction.NewEngine(g, events, cfgModel.Settings, engineOpts...)

	logger.Info("Canvas loaded.",
		"templates", reg.Len(),
		"nodes", g.Len(),
		"connections", len(g.Connections()),
	)

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		model:    cfgModel,
		registry: reg,
		events:   events,
		layout:   lay,
		setupErr: setupErr,
		graph:    g,
		engine:   engine,
	}, nil
}

// logEvent traces every broadcast event.
func logEvent(ctx context.Context, e event.Event) {
	logger := ctxlog.FromContext(ctx)
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []any{"event", e.Type()}
	for k, v := range event.Fields(e) {
		attrs = append(attrs, k, v)
	}
	logger.Debug("Event emitted.", attrs...)
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Events returns the broadcaster hosts subscribe to.
func (a *App) Events() *event.Broadcaster {
	return a.events
}

// Layout returns the layout collaborator.
func (a *App) Layout() *layout.Layout {
	return a.layout
}

// SetupErrors reports what the bootstrap of initial nodes skipped, or nil.
func (a *App) SetupErrors() error {
	return a.setupErr
}
