package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// Result carries what a successful command produced.
type Result struct {
	// NodeID is the id of the node created by CreateNode.
	NodeID string
}

// ExecuteCommand is the single entry point for every mutation. It publishes
// CommandExecuted on success and CommandFailed on failure, and returns the
// failure to the caller as well.
func (g *Graph) ExecuteCommand(ctx context.Context, cmd model.Command) (Result, error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}
	ctx, logger := ctxlog.With(ctx, "command", cmd.Kind())
	logger.Debug("Executing command.", "detail", cmd.String())

	var (
		res Result
		err error
	)
	switch c := cmd.(type) {
	case model.CreateNode:
		res.NodeID, err = g.createNode(ctx, c.TemplateID, c.X, c.Y)
	case model.DeleteNode:
		err = g.deleteNode(ctx, c.NodeID)
	case model.CreateConnection:
		err = g.connect(ctx, c.Connection)
	case model.DeleteConnection:
		err = g.deleteConnection(ctx, c.Connection)
	case model.DeleteSlotConnections:
		err = g.deleteSlotConnections(ctx, c.NodeID, c.SlotID)
	case model.UpdateField:
		err = g.updateField(ctx, c.NodeID, c.FieldID, c.Value)
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}

	if err != nil {
		logger.Warn("Command rejected.", "detail", cmd.String(), "error", err)
		g.events.Emit(ctx, event.CommandFailed{Command: cmd, Reason: err})
		return Result{}, err
	}
	logger.Debug("Command executed.", "detail", cmd.String())
	g.events.Emit(ctx, event.CommandExecuted{Command: cmd})
	return res, nil
}

func (g *Graph) checkCreate(t *model.NodeTemplate) error {
	if err := evaluate(check{LevelTemplate, "can_create", t.ID, t.Capabilities.CanCreate}); err != nil {
		return err
	}
	if t.MaxInstances != nil {
		if count := g.InstanceCount(t.ID); count >= *t.MaxInstances {
			return fmt.Errorf("%w: template %q already has %d of at most %d instances", ErrCardinality, t.ID, count, *t.MaxInstances)
		}
	}
	return nil
}

// checkFloor fails when deleting one more instance of t would reach its
// min_instances.
func (g *Graph) checkFloor(t *model.NodeTemplate) error {
	if t.MinInstances == nil {
		return nil
	}
	if count := g.InstanceCount(t.ID); count <= *t.MinInstances {
		return fmt.Errorf("%w: template %q has %d instances and requires at least %d", ErrCardinality, t.ID, count, *t.MinInstances)
	}
	return nil
}

func (g *Graph) createNode(ctx context.Context, templateID string, x, y float64) (string, error) {
	t, ok := g.registry.Get(templateID)
	if !ok {
		return "", &NodeError{Op: "creation", TemplateName: templateID, Err: notFound("template", templateID)}
	}
	if err := g.checkCreate(t); err != nil {
		return "", &NodeError{Op: "creation", TemplateName: t.Name, Err: err}
	}

	n := model.NewNodeInstance(t, g.freshID(), x, y)
	g.addNode(n)
	ctxlog.FromContext(ctx).Debug("Node created.", "node_id", n.ID, "template", t.ID, "x", x, "y", y)
	return n.ID, nil
}

// CheckConnection runs the lookups and the three connect-time rules without
// mutating anything: allowed target, host slot cardinality and duplicates.
// Capability locks are not evaluated.
func (g *Graph) CheckConnection(c model.Connection) error {
	_, _, _, _, err := g.checkConnection(c)
	return err
}

// IsValidConnection reports whether CheckConnection passes.
func (g *Graph) IsValidConnection(c model.Connection) bool {
	return g.CheckConnection(c) == nil
}

func (g *Graph) checkConnection(c model.Connection) (*model.NodeTemplate, *model.NodeInstance, *model.SlotTemplate, *model.SlotInstance, error) {
	host, hostTmpl, err := g.resolveNode(c.HostNodeID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	st, s, err := resolveSlot(hostTmpl, host, c.HostSlotID)
	if err != nil {
		return hostTmpl, host, nil, nil, err
	}
	target, targetTmpl, err := g.resolveNode(c.TargetNodeID)
	if err != nil {
		return hostTmpl, host, st, s, err
	}
	if _, _, err := resolveSlot(targetTmpl, target, c.TargetSlotID); err != nil {
		return hostTmpl, host, st, s, err
	}

	if !st.Allows(targetTmpl.Name) {
		return hostTmpl, host, st, s, fmt.Errorf("%w: slot %q does not accept template %q", ErrDisallowedTarget, st.Name, targetTmpl.Name)
	}
	if !st.HasRoom(len(s.Connections)) {
		return hostTmpl, host, st, s, fmt.Errorf("%w: slot %q already holds %d of at most %d connections", ErrCardinality, st.Name, len(s.Connections), *st.MaxConnections)
	}
	if slices.ContainsFunc(s.Connections, c.SameEdge) {
		return hostTmpl, host, st, s, fmt.Errorf("%w: %s", ErrDuplicateConnection, c)
	}
	return hostTmpl, host, st, s, nil
}

func (g *Graph) connect(ctx context.Context, c model.Connection) error {
	t, n, st, s, err := g.checkConnection(c)
	if err == nil {
		err = connectionChain(t, n, st, s)
	}
	if err != nil {
		ce := &ConnectionError{Connection: c, TemplateName: c.HostNodeID, SlotName: c.HostSlotID, Err: err}
		if t != nil {
			ce.TemplateName = t.Name
		}
		if st != nil {
			ce.SlotName = st.Name
		}
		return ce
	}

	s.Connections = append(s.Connections, c)
	ctxlog.FromContext(ctx).Debug("Connection created.", "connection", c.String())
	g.events.Emit(ctx, event.ConnectionCompleted{Connection: c})
	return nil
}

func (g *Graph) deleteConnection(ctx context.Context, c model.Connection) error {
	host, t, err := g.resolveNode(c.HostNodeID)
	if err != nil {
		return err
	}
	st, s, err := resolveSlot(t, host, c.HostSlotID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(s.Connections, c.SameEdge)
	if idx < 0 {
		return notFound("connection", c.String())
	}
	stored := s.Connections[idx]
	if err := evaluate(check{LevelConnection, "can_delete", stored.String(), stored.CanDelete}); err != nil {
		return err
	}
	if err := connectionChain(t, host, st, s); err != nil {
		return err
	}

	s.Connections = slices.Delete(s.Connections, idx, idx+1)
	ctxlog.FromContext(ctx).Debug("Connection deleted.", "connection", c.String())
	return nil
}

func (g *Graph) deleteSlotConnections(ctx context.Context, nodeID, slotID string) error {
	n, t, err := g.resolveNode(nodeID)
	if err != nil {
		return err
	}
	if _, _, err := resolveSlot(t, n, slotID); err != nil {
		return err
	}
	if slotID == model.IncomingSlotID {
		return g.deleteIncoming(ctx, nodeID)
	}
	return g.deleteHosted(ctx, n, slotID)
}

// deleteHosted removes every connection hosted by one slot, or by every slot
// when slotID is empty.
func (g *Graph) deleteHosted(ctx context.Context, n *model.NodeInstance, slotID string) error {
	b := batch{op: "delete outgoing connections of " + n.ID}
	for _, s := range n.Slots {
		if slotID != "" && s.SlotTemplateID != slotID {
			continue
		}
		for _, c := range slices.Clone(s.Connections) {
			b.add(g.deleteConnection(ctx, c))
		}
	}
	return b.err()
}

// deleteIncoming removes every connection in the graph that targets nodeID.
func (g *Graph) deleteIncoming(ctx context.Context, nodeID string) error {
	b := batch{op: "delete incoming connections of " + nodeID}
	for _, c := range g.IncomingConnections(nodeID) {
		b.add(g.deleteConnection(ctx, c))
	}
	return b.err()
}

func (g *Graph) deleteNode(ctx context.Context, nodeID string) error {
	n, ok := g.nodes[nodeID]
	if !ok {
		return &NodeError{Op: "deletion", NodeID: nodeID, Err: notFound("node", nodeID)}
	}
	t, ok := g.registry.Get(n.TemplateID)
	if !ok {
		return &NodeError{Op: "deletion", NodeID: nodeID, TemplateName: n.TemplateID, Err: notFound("template", n.TemplateID)}
	}
	fail := func(err error) error {
		return &NodeError{Op: "deletion", NodeID: nodeID, TemplateName: t.Name, Err: err}
	}
	if err := deleteNodeChain(t, n); err != nil {
		return fail(err)
	}
	if err := g.checkFloor(t); err != nil {
		return fail(err)
	}

	// Both cascades run even if the first fails; completed removals stay.
	outErr := g.deleteHosted(ctx, n, "")
	inErr := g.deleteIncoming(ctx, nodeID)
	if outErr != nil || inErr != nil {
		b := batch{op: "connection cascade"}
		b.add(outErr)
		b.add(inErr)
		return fail(b.err())
	}

	g.removeNode(nodeID)
	ctxlog.FromContext(ctx).Debug("Node deleted.", "node_id", nodeID, "template", t.ID)
	return nil
}

func (g *Graph) updateField(ctx context.Context, nodeID, fieldID, value string) error {
	n, t, err := g.resolveNode(nodeID)
	if err != nil {
		return err
	}
	if err := fieldChain(n, nil); err != nil {
		return err
	}
	ft, ok := t.Field(fieldID)
	if !ok {
		return notFound("field", t.ID+"."+fieldID)
	}
	if err := ft.Type.Validate(value); err != nil {
		return fmt.Errorf("field %q: %w", ft.Name, err)
	}
	f, ok := n.Field(fieldID)
	if !ok {
		return notFound("field", nodeID+"."+fieldID)
	}
	if err := fieldChain(n, f); err != nil {
		return err
	}

	old := f.Value
	f.Value = value
	ctxlog.FromContext(ctx).Debug("Field updated.", "node_id", nodeID, "field", fieldID, "old", old, "new", value)
	return nil
}
