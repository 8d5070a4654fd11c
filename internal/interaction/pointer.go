package interaction

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// PointerDown handles a button press at a screen position.
func (e *Engine) PointerDown(ctx context.Context, x, y float64) error {
	s := e.state
	screen := geometry.Point{X: x, Y: y}
	p := s.View.ToGraph(screen)
	logger := ctxlog.FromContext(ctx)

	if s.Mode == ModeAddNode {
		logger.Debug("Add-node press.", "template", s.AddTemplateID, "x", p.X, "y", p.Y)
		return e.execute(ctx, model.CreateNode{TemplateID: s.AddTemplateID, X: p.X, Y: p.Y})
	}

	if s.PointerDown {
		e.abandonPress(ctx)
	}
	s.PointerDown = true
	s.LastPointer = screen
	s.panMoved = false
	s.pressConsumed = false

	if slot, ok := e.hitSlot(p); ok {
		s.ArmedSlot = slot
		logger.Debug("Press armed on slot.", "node_id", slot.NodeID, "slot", slot.SlotID)
		return nil
	}

	if n, ok := e.hitNode(p); ok {
		s.ArmedNode = n.ID
		s.Selected = n.ID
		s.DragOffset = geometry.Point{X: p.X - n.X, Y: p.Y - n.Y}
		logger.Debug("Press armed on node.", "node_id", n.ID)
		return nil
	}

	if s.Menu != nil && e.menuRect().Contains(screen) {
		s.pressConsumed = true
		i, ok := e.itemAt(screen)
		if !ok {
			return nil
		}
		target, item := s.Menu.Target, s.Menu.Items[i]
		logger.Debug("Menu item picked.", "label", item.Label, "action", item.Action.String())
		err := e.runItem(ctx, target, item)
		e.closeMenu(ctx)
		return err
	}

	if _, ok := e.hitConnection(p); ok {
		return nil
	}

	if e.settings.Movable {
		s.Panning = true
	}
	s.clearArmed()
	s.Selected = ""
	return nil
}

// PointerMove handles pointer motion to a screen position.
func (e *Engine) PointerMove(ctx context.Context, x, y float64) {
	s := e.state
	if s.Mode == ModeAddNode {
		return
	}
	screen := geometry.Point{X: x, Y: y}
	p := s.View.ToGraph(screen)
	e.updateHover(p)

	if !s.PointerDown {
		s.LastPointer = screen
		return
	}
	logger := ctxlog.FromContext(ctx)

	if s.ArmedNode != "" && !s.DraggingNode && s.ConnectionDrag == nil {
		if n, ok := e.graph.Node(s.ArmedNode); ok && n.Capabilities.CanMove {
			e.closeMenu(ctx)
			s.DraggingNode = true
			logger.Debug("Node drag started.", "node_id", n.ID)
			e.layout.DragStarted(ctx, n.ID)
		}
	}

	if s.ArmedSlot != nil && s.ConnectionDrag == nil && e.settings.Mutable {
		e.closeMenu(ctx)
		s.ConnectionDrag = &ConnectionDrag{FromNode: s.ArmedSlot.NodeID, FromSlot: s.ArmedSlot.SlotID}
		logger.Debug("Connection drag started.", "node_id", s.ArmedSlot.NodeID, "slot", s.ArmedSlot.SlotID)
		e.events.Emit(ctx, event.ConnectionStarted{NodeID: s.ArmedSlot.NodeID, SlotID: s.ArmedSlot.SlotID})
	}

	if s.ConnectionDrag != nil {
		s.ConnectionDrag.X, s.ConnectionDrag.Y = p.X, p.Y
	}

	switch {
	case s.DraggingNode:
		if e.graph.MoveNode(s.ArmedNode, p.X-s.DragOffset.X, p.Y-s.DragOffset.Y) {
			e.layout.Step(ctx, s.ArmedNode)
		}
	case s.Panning:
		s.View.Pan(screen.X-s.LastPointer.X, screen.Y-s.LastPointer.Y)
		s.panMoved = true
	}
	s.LastPointer = screen
}

// PointerUp handles a button release at a screen position. A rejected
// connection is returned after ConnectionFailed was published.
func (e *Engine) PointerUp(ctx context.Context, x, y float64) error {
	s := e.state
	if s.Mode == ModeAddNode {
		return nil
	}
	screen := geometry.Point{X: x, Y: y}
	p := s.View.ToGraph(screen)
	s.PointerDown = false

	if s.ConnectionDrag != nil {
		return e.finishConnectionDrag(ctx, p)
	}

	if s.DraggingNode {
		e.finishNodeDrag(ctx)
		return nil
	}

	defer s.clearArmed()
	wasPanning := s.Panning
	s.Panning = false
	if wasPanning {
		e.layout.PersistView(ctx, s.View)
	}
	if s.pressConsumed || s.panMoved {
		return nil
	}

	if target, ok := e.menuTarget(p); ok {
		e.openMenu(ctx, screen, target)
		return nil
	}
	e.closeMenu(ctx)
	return nil
}

// finishConnectionDrag connects the armed slot to the first other node under
// p. Drag state is cleared on every path.
func (e *Engine) finishConnectionDrag(ctx context.Context, p geometry.Point) error {
	s := e.state
	drag := *s.ConnectionDrag
	defer func() {
		s.ConnectionDrag = nil
		s.DraggingNode = false
		s.clearArmed()
	}()

	for _, n := range e.graph.Nodes() {
		if n.ID == drag.FromNode || !geometry.NodeRect(n).Contains(p) {
			continue
		}
		c := model.Connection{
			HostNodeID:   drag.FromNode,
			HostSlotID:   drag.FromSlot,
			TargetNodeID: n.ID,
			TargetSlotID: model.IncomingSlotID,
			CanDelete:    true,
		}
		if err := e.execute(ctx, model.CreateConnection{Connection: c}); err != nil {
			e.events.Emit(ctx, event.ConnectionFailed{Reason: err.Error()})
			return fmt.Errorf("connection drag: %w", err)
		}
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Connection drag released on empty canvas.", "node_id", drag.FromNode, "slot", drag.FromSlot)
	return nil
}

func (e *Engine) finishNodeDrag(ctx context.Context) {
	s := e.state
	id := s.ArmedNode
	if n, ok := e.graph.Node(id); ok {
		if e.settings.SnapToGrid && e.settings.GridSize > 0 {
			e.graph.MoveNode(id, snap(n.X, e.settings.GridSize), snap(n.Y, e.settings.GridSize))
		}
		ctxlog.FromContext(ctx).Debug("Node drag ended.", "node_id", id, "x", n.X, "y", n.Y)
		e.events.Emit(ctx, event.NodeMoved{NodeID: id, X: n.X, Y: n.Y})
	}
	e.layout.DragEnded(ctx, id)
	e.layout.PersistView(ctx, s.View)
	s.DraggingNode = false
	s.Panning = false
	s.clearArmed()
}

// abandonPress drops what is left of a press whose release never arrived.
func (e *Engine) abandonPress(ctx context.Context) {
	s := e.state
	ctxlog.FromContext(ctx).Debug("Press abandoned without release.", "armed_node", s.ArmedNode, "dragging", s.DraggingNode)
	if s.DraggingNode {
		e.layout.DragEnded(ctx, s.ArmedNode)
	}
	if s.Panning && s.panMoved {
		e.layout.PersistView(ctx, s.View)
	}
	s.DraggingNode = false
	s.ConnectionDrag = nil
	s.Panning = false
	s.clearArmed()
}

// menuTarget resolves the release point in slot, field, node, connection
// order.
func (e *Engine) menuTarget(p geometry.Point) (model.Target, bool) {
	if slot, ok := e.hitSlot(p); ok {
		return model.SlotTarget(slot.NodeID, slot.SlotID), true
	}
	if nodeID, fieldID, ok := e.hitField(p); ok {
		return model.FieldTarget(nodeID, fieldID), true
	}
	if n, ok := e.hitNode(p); ok {
		return model.NodeTarget(n.ID), true
	}
	if c, ok := e.hitConnection(p); ok {
		return model.ConnectionTarget(c), true
	}
	return model.Target{}, false
}

func snap(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}
