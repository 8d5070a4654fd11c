package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

var (
	// ErrReadOnly is returned when input would mutate an immutable canvas.
	ErrReadOnly = errors.New("canvas is read-only")
	// ErrNoFieldEdit is returned when committing without a pending edit.
	ErrNoFieldEdit = errors.New("no field edit in progress")
)

// Graph is the part of the graph the engine reads and commands.
type Graph interface {
	Node(id string) (*model.NodeInstance, bool)
	Nodes() []*model.NodeInstance
	Template(id string) (*model.NodeTemplate, bool)
	Connections() []model.Connection
	MoveNode(id string, x, y float64) bool
	CanModifyField(nodeID, fieldID string) error
	ExecuteCommand(ctx context.Context, cmd model.Command) (graph.Result, error)
}

// Layout is notified about drags and view changes. It may move nodes between
// callbacks.
type Layout interface {
	DragStarted(ctx context.Context, nodeID string)
	Step(ctx context.Context, nodeID string)
	DragEnded(ctx context.Context, nodeID string)
	PersistView(ctx context.Context, v geometry.ViewTransform)
}

// NopLayout ignores every notification.
type NopLayout struct{}

func (NopLayout) DragStarted(context.Context, string)                 {}
func (NopLayout) Step(context.Context, string)                        {}
func (NopLayout) DragEnded(context.Context, string)                   {}
func (NopLayout) PersistView(context.Context, geometry.ViewTransform) {}

// Engine applies input to a State.
type Engine struct {
	graph    Graph
	state    *State
	settings config.Settings
	events   *event.Broadcaster
	layout   Layout
	menus    MenuProvider
}

// Option configures an Engine.
type Option func(*Engine)

// WithLayout sets the layout collaborator.
func WithLayout(l Layout) Option {
	return func(e *Engine) { e.layout = l }
}

// WithMenuProvider replaces DefaultMenu.
func WithMenuProvider(p MenuProvider) Option {
	return func(e *Engine) { e.menus = p }
}

// WithState starts the engine from an existing state.
func WithState(s *State) Option {
	return func(e *Engine) { e.state = s }
}

// NewEngine creates an engine publishing UI events on events.
func NewEngine(g Graph, events *event.Broadcaster, settings config.Settings, opts ...Option) *Engine {
	e := &Engine{
		graph:    g,
		settings: settings,
		events:   events,
		layout:   NopLayout{},
		menus:    DefaultMenu{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = NewState()
	}
	return e
}

// State returns the live state. Readers must not mutate it.
func (e *Engine) State() *State { return e.state }

// Settings returns the canvas settings the engine was built with.
func (e *Engine) Settings() config.Settings { return e.settings }

// SetMode switches the interaction mode. ModeAddNode needs the id of the
// template to place.
func (e *Engine) SetMode(mode Mode, templateID string) error {
	if mode == ModeAddNode {
		if _, ok := e.graph.Template(templateID); !ok {
			return fmt.Errorf("add-node mode: %w: template %q", graph.ErrNotFound, templateID)
		}
	}
	e.state.Mode = mode
	e.state.AddTemplateID = templateID
	if mode == ModeDefault {
		e.state.AddTemplateID = ""
	}
	return nil
}

// Execute runs a host-issued command unless the canvas is immutable. A
// deleted node is dropped from the selection.
func (e *Engine) Execute(ctx context.Context, cmd model.Command) (graph.Result, error) {
	if !e.settings.Mutable {
		return graph.Result{}, fmt.Errorf("%s: %w", cmd.Kind(), ErrReadOnly)
	}
	res, err := e.graph.ExecuteCommand(ctx, cmd)
	if err != nil {
		return res, err
	}
	if del, ok := cmd.(model.DeleteNode); ok && e.state.Selected == del.NodeID {
		e.state.Selected = ""
	}
	return res, nil
}

func (e *Engine) execute(ctx context.Context, cmd model.Command) error {
	_, err := e.Execute(ctx, cmd)
	return err
}
