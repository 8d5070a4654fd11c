package interaction

import (
	"context"
	"testing"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/nodeid"
	"github.com/specialistvlad/nodecanvas/internal/registry"
	"github.com/stretchr/testify/require"
)

var allCaps = model.Capabilities{CanDelete: true, CanCreate: true, CanModifySlots: true, CanModifyFields: true}

// fixture is a canvas with two A nodes side by side:
//
//	a1 at (0,0)   100x60, out anchor (112,30), incoming anchor (0,30)
//	a2 at (300,0) 100x60, out anchor (412,30), incoming anchor (300,30)
type fixture struct {
	g      *graph.Graph
	engine *Engine
	events []event.Event
	layout *spyLayout
	a1, a2 string
}

type spyLayout struct {
	calls []string
	views []geometry.ViewTransform
}

func (l *spyLayout) DragStarted(_ context.Context, id string) { l.calls = append(l.calls, "start:"+id) }
func (l *spyLayout) Step(_ context.Context, id string)        { l.calls = append(l.calls, "step:"+id) }
func (l *spyLayout) DragEnded(_ context.Context, id string)   { l.calls = append(l.calls, "end:"+id) }
func (l *spyLayout) PersistView(_ context.Context, v geometry.ViewTransform) {
	l.calls = append(l.calls, "persist")
	l.views = append(l.views, v)
}

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

func templates() []model.NodeTemplate {
	return []model.NodeTemplate{
		{
			ID:   "a",
			Name: "A",
			Slots: []model.SlotTemplate{
				{ID: "out", Name: "Out", Side: model.SideRight, Direction: model.Outgoing, AllowedTargets: []string{"A", "F"}, MaxConnections: model.Limit(1), CanModifyConnections: true},
			},
			Capabilities:  allCaps,
			DefaultWidth:  100,
			DefaultHeight: 60,
		},
		{
			ID:   "f",
			Name: "F",
			Fields: []model.FieldTemplate{
				{ID: "on", Name: "On", Type: model.FieldBoolean, Default: "false"},
				{ID: "count", Name: "Count", Type: model.FieldInteger, Default: "0"},
				{ID: "label", Name: "Label", Type: model.FieldString, Default: "hi"},
			},
			Capabilities:  allCaps,
			DefaultWidth:  100,
			DefaultHeight: 60,
		},
	}
}

func newFixture(t *testing.T, mutate ...func(*config.Settings)) *fixture {
	t.Helper()
	reg := registry.New()
	for _, tmpl := range templates() {
		require.NoError(t, reg.Register(testCtx(), tmpl))
	}

	settings := config.DefaultSettings()
	for _, m := range mutate {
		m(&settings)
	}

	b := event.NewBroadcaster()
	f := &fixture{layout: &spyLayout{}}
	b.Subscribe(func(_ context.Context, e event.Event) { f.events = append(f.events, e) })

	f.g = graph.New(reg, graph.WithBroadcaster(b), graph.WithIDGenerator(nodeid.Sequential("n")))
	f.engine = NewEngine(f.g, b, settings, WithLayout(f.layout))
	f.a1 = f.create(t, "a", 0, 0)
	f.a2 = f.create(t, "a", 300, 0)
	f.events = nil
	return f
}

func (f *fixture) create(t *testing.T, templateID string, x, y float64) string {
	t.Helper()
	res, err := f.g.ExecuteCommand(testCtx(), model.CreateNode{TemplateID: templateID, X: x, Y: y})
	require.NoError(t, err)
	return res.NodeID
}

func (f *fixture) eventTypes() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type()
	}
	return out
}

// click presses and releases at the same screen point.
func (f *fixture) click(t *testing.T, x, y float64) {
	t.Helper()
	require.NoError(t, f.engine.PointerDown(testCtx(), x, y))
	require.NoError(t, f.engine.PointerUp(testCtx(), x, y))
}
