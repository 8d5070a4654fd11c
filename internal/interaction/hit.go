package interaction

import (
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// FieldRowHeight is the height of one field row. Rows are stacked and
// centred vertically inside the node.
const FieldRowHeight = 15.0

func (e *Engine) hitSlot(p geometry.Point) (*SlotRef, bool) {
	for _, n := range e.graph.Nodes() {
		t, ok := e.graph.Template(n.TemplateID)
		if !ok {
			continue
		}
		for _, st := range t.Slots {
			anchor, ok := geometry.SlotAnchor(n, t, st.ID, e.settings.SlotRadius)
			if ok && anchor.Dist(p) <= e.settings.SlotRadius {
				return &SlotRef{NodeID: n.ID, SlotID: st.ID}, true
			}
		}
	}
	return nil, false
}

// hitNode tests the instance rectangle only.
func (e *Engine) hitNode(p geometry.Point) (*model.NodeInstance, bool) {
	for _, n := range e.graph.Nodes() {
		if geometry.NodeRect(n).Contains(p) {
			return n, true
		}
	}
	return nil, false
}

// hitField returns the field row under p on the first node containing p.
func (e *Engine) hitField(p geometry.Point) (nodeID, fieldID string, ok bool) {
	n, found := e.hitNode(p)
	if !found || len(n.Fields) == 0 {
		return "", "", false
	}
	if row, ok := FieldRow(n, p); ok {
		return n.ID, n.Fields[row].FieldTemplateID, true
	}
	return "", "", false
}

// FieldRow returns the index of the field row of n containing p.
func FieldRow(n *model.NodeInstance, p geometry.Point) (int, bool) {
	total := FieldRowHeight * float64(len(n.Fields))
	top := n.Y + (n.Height-total)/2
	if p.X < n.X || p.X > n.X+n.Width || p.Y < top || p.Y >= top+total {
		return -1, false
	}
	return int((p.Y - top) / FieldRowHeight), true
}

func (e *Engine) hitConnection(p geometry.Point) (model.Connection, bool) {
	for _, c := range e.graph.Connections() {
		curve, ok := e.curve(c)
		if ok && curve.Hit(p) {
			return c, true
		}
	}
	return model.Connection{}, false
}

// curve returns the Bézier drawn for a connection.
func (e *Engine) curve(c model.Connection) (geometry.Bezier, bool) {
	from, fromSide, ok := e.anchor(c.HostNodeID, c.HostSlotID)
	if !ok {
		return geometry.Bezier{}, false
	}
	to, toSide, ok := e.anchor(c.TargetNodeID, c.TargetSlotID)
	if !ok {
		return geometry.Bezier{}, false
	}
	return geometry.ConnectionCurve(from, fromSide, to, toSide, e.settings.ControlPointDistance), true
}

func (e *Engine) anchor(nodeID, slotID string) (geometry.Point, model.Side, bool) {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return geometry.Point{}, 0, false
	}
	t, ok := e.graph.Template(n.TemplateID)
	if !ok {
		return geometry.Point{}, 0, false
	}
	st, ok := t.Slot(slotID)
	if !ok {
		return geometry.Point{}, 0, false
	}
	p, ok := geometry.SlotAnchor(n, t, slotID, e.settings.SlotRadius)
	return p, st.Side, ok
}

// updateHover recomputes the hover markers in slot, node, connection order.
func (e *Engine) updateHover(p geometry.Point) {
	e.state.Hover = Hover{}
	if s, ok := e.hitSlot(p); ok {
		e.state.Hover.Slot = s
		return
	}
	if n, ok := e.hitNode(p); ok {
		e.state.Hover.NodeID = n.ID
		return
	}
	if c, ok := e.hitConnection(p); ok {
		e.state.Hover.Connection = &c
	}
}

// Curve returns the curve of a connection for renderers.
func (e *Engine) Curve(c model.Connection) (geometry.Bezier, bool) {
	return e.curve(c)
}
