// Package layout provides the default layout collaborator. It does not place
// nodes itself; it records drag snapshots and the last persisted view so a
// host can restore them.
package layout

import (
	"context"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/interaction"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

var _ interaction.Layout = (*Layout)(nil)

// Nodes resolves node instances by id.
type Nodes interface {
	Node(id string) (*model.NodeInstance, bool)
}

// Layout tracks drags and the persisted view.
type Layout struct {
	nodes     Nodes
	snapshots map[string]geometry.Point
	dragging  string
	steps     int
	view      geometry.ViewTransform
	hasView   bool
}

// New creates a layout over nodes.
func New(nodes Nodes) *Layout {
	return &Layout{
		nodes:     nodes,
		snapshots: make(map[string]geometry.Point),
		view:      geometry.Identity(),
	}
}

// DragStarted snapshots the node's position.
func (l *Layout) DragStarted(ctx context.Context, nodeID string) {
	n, ok := l.nodes.Node(nodeID)
	if !ok {
		return
	}
	l.snapshots[nodeID] = geometry.Point{X: n.X, Y: n.Y}
	l.dragging = nodeID
	l.steps = 0
	ctxlog.FromContext(ctx).Debug("Layout drag started.", "node_id", nodeID, "x", n.X, "y", n.Y)
}

// Step counts one incremental step of the running drag.
func (l *Layout) Step(_ context.Context, nodeID string) {
	if l.dragging == nodeID {
		l.steps++
	}
}

// DragEnded stops tracking the drag. The snapshot is kept for Restore.
func (l *Layout) DragEnded(ctx context.Context, nodeID string) {
	if l.dragging != nodeID {
		return
	}
	ctxlog.FromContext(ctx).Debug("Layout drag ended.", "node_id", nodeID, "steps", l.steps)
	l.dragging = ""
}

// PersistView stores v as the last persisted view.
func (l *Layout) PersistView(ctx context.Context, v geometry.ViewTransform) {
	l.view = v
	l.hasView = true
	ctxlog.FromContext(ctx).Debug("View persisted.", "pan_x", v.PanX, "pan_y", v.PanY, "zoom", v.Zoom)
}

// View returns the last persisted view and whether one was persisted.
func (l *Layout) View() (geometry.ViewTransform, bool) {
	return l.view, l.hasView
}

// Dragging returns the id of the node being dragged, if any, and the number
// of steps taken so far.
func (l *Layout) Dragging() (string, int) {
	return l.dragging, l.steps
}

// Snapshot returns the position a node had when its last drag started.
func (l *Layout) Snapshot(nodeID string) (geometry.Point, bool) {
	p, ok := l.snapshots[nodeID]
	return p, ok
}

// Restore moves a node back to its last snapshot.
func (l *Layout) Restore(nodeID string) bool {
	p, ok := l.snapshots[nodeID]
	if !ok {
		return false
	}
	n, ok := l.nodes.Node(nodeID)
	if !ok {
		delete(l.snapshots, nodeID)
		return false
	}
	n.X, n.Y = p.X, p.Y
	return true
}

// Reset clears the pan of the persisted view, keeping its zoom, and returns
// the result.
func (l *Layout) Reset(ctx context.Context) geometry.ViewTransform {
	v := l.view
	v.PanX, v.PanY = 0, 0
	l.PersistView(ctx, v)
	return v
}
