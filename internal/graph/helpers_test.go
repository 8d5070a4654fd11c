package graph

import (
	"context"
	"testing"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/nodeid"
	"github.com/specialistvlad/nodecanvas/internal/registry"
	"github.com/stretchr/testify/require"
)

var allCaps = model.Capabilities{CanDelete: true, CanCreate: true, CanModifySlots: true, CanModifyFields: true}

// templateA has one outgoing slot holding at most one connection.
func templateA() model.NodeTemplate {
	return model.NodeTemplate{
		ID:   "a",
		Name: "A",
		Slots: []model.SlotTemplate{
			{ID: "out", Name: "Out", Side: model.SideRight, Direction: model.Outgoing, AllowedTargets: []string{"A", "B"}, MaxConnections: model.Limit(1), CanModifyConnections: true},
		},
		Capabilities:  allCaps,
		DefaultWidth:  100,
		DefaultHeight: 50,
	}
}

// templateB has an unbounded slot, one field of each type and at most two
// instances.
func templateB() model.NodeTemplate {
	return model.NodeTemplate{
		ID:   "b",
		Name: "B",
		Slots: []model.SlotTemplate{
			{ID: "many", Name: "Many", Side: model.SideBottom, Direction: model.Outgoing, AllowedTargets: []string{"A"}, CanModifyConnections: true},
		},
		Fields: []model.FieldTemplate{
			{ID: "enabled", Name: "Enabled", Type: model.FieldBoolean, Default: "false"},
			{ID: "count", Name: "Count", Type: model.FieldInteger, Default: "0"},
			{ID: "label", Name: "Label", Type: model.FieldString, Default: ""},
		},
		MaxInstances:  model.Limit(2),
		Capabilities:  allCaps,
		DefaultWidth:  100,
		DefaultHeight: 50,
	}
}

type recorder struct {
	events []event.Event
}

func (r *recorder) listen(_ context.Context, e event.Event) { r.events = append(r.events, e) }

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

// newTestGraph registers the given templates and returns a graph using
// sequential node ids (n-1, n-2, ...) plus a recorder of its events.
func newTestGraph(t *testing.T, templates ...model.NodeTemplate) (*Graph, *recorder) {
	t.Helper()
	reg := registry.New()
	for _, tmpl := range templates {
		require.NoError(t, reg.Register(testCtx(), tmpl))
	}
	g := New(reg, WithIDGenerator(nodeid.Sequential("n")))
	rec := &recorder{}
	g.Events().Subscribe(rec.listen)
	return g, rec
}

func mustCreate(t *testing.T, g *Graph, templateID string, x, y float64) string {
	t.Helper()
	res, err := g.ExecuteCommand(testCtx(), model.CreateNode{TemplateID: templateID, X: x, Y: y})
	require.NoError(t, err)
	return res.NodeID
}

func mustConnect(t *testing.T, g *Graph, host, slot, target string) model.Connection {
	t.Helper()
	c := model.Connection{HostNodeID: host, HostSlotID: slot, TargetNodeID: target, TargetSlotID: model.IncomingSlotID, CanDelete: true}
	_, err := g.ExecuteCommand(testCtx(), model.CreateConnection{Connection: c})
	require.NoError(t, err)
	return c
}

// referencing counts connections anywhere in the graph touching nodeID.
func referencing(g *Graph, nodeID string) int {
	count := 0
	for _, c := range g.Connections() {
		if c.References(nodeID) {
			count++
		}
	}
	return count
}
