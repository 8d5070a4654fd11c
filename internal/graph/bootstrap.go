package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/nodeid"
	"github.com/zclconf/go-cty/cty/convert"
)

// Bootstrap places the initial nodes of a canvas and then their connections.
//
// Templates are resolved by name, then by id. Initial nodes skip the
// can_create lock but still respect max_instances. Initial connections skip
// every capability lock but still need an existing slot and target node, and
// the slot must accept the target's template.
// Individual failures are skipped and returned together as a *BatchError;
// everything that succeeded stays in the graph.
func (g *Graph) Bootstrap(ctx context.Context, nodes []*config.InitialNode) error {
	logger := ctxlog.FromContext(ctx)
	b := batch{op: "bootstrap"}
	placed := make(map[string]string, len(nodes))
	hosts := make([]string, len(nodes))

	for i, def := range nodes {
		id, err := g.placeInitialNode(ctx, def)
		b.add(err)
		if err != nil {
			continue
		}
		hosts[i] = id
		if def.ID != "" {
			placed[def.ID] = id
		}
	}

	for i, def := range nodes {
		hostID := hosts[i]
		if hostID == "" {
			continue
		}
		for _, ic := range def.Connections {
			b.add(g.placeInitialConnection(ctx, hostID, ic, placed))
		}
	}

	if err := b.err(); err != nil {
		logger.Warn("Bootstrap finished with errors.", "nodes", g.Len(), "errors", len(b.errs))
		return err
	}
	logger.Debug("Bootstrap finished.", "nodes", g.Len())
	return nil
}

func (g *Graph) placeInitialNode(ctx context.Context, def *config.InitialNode) (string, error) {
	t, ok := g.registry.Lookup(def.Template)
	if !ok {
		return "", &NodeError{Op: "creation", NodeID: def.ID, TemplateName: def.Template, Err: notFound("template", def.Template)}
	}
	fail := func(err error) (string, error) {
		return "", &NodeError{Op: "creation", NodeID: def.ID, TemplateName: t.Name, Err: err}
	}

	id := def.ID
	if id == "" {
		id = g.freshID()
	} else if err := nodeid.Validate(id); err != nil {
		return fail(err)
	} else if _, taken := g.nodes[id]; taken {
		return fail(fmt.Errorf("node id %q is already in use", id))
	}
	if t.MaxInstances != nil && g.InstanceCount(t.ID) >= *t.MaxInstances {
		return fail(fmt.Errorf("%w: template %q is at max_instances %d", ErrCardinality, t.ID, *t.MaxInstances))
	}

	n := model.NewNodeInstance(t, id, def.X, def.Y)
	applyOverride(&n.Capabilities.CanDelete, def.CanDelete)
	applyOverride(&n.Capabilities.CanMove, def.CanMove)
	applyOverride(&n.Capabilities.CanModifyConnections, def.CanModifyConnections)
	applyOverride(&n.Capabilities.CanModifyFields, def.CanModifyFields)

	// Field values are validated before the node is stored so a bad value
	// rejects the whole node.
	for fieldID, v := range def.Fields {
		ft, ok := t.Field(fieldID)
		if !ok {
			return fail(notFound("field", t.ID+"."+fieldID))
		}
		converted, err := convert.Convert(v, ft.Type.CtyType())
		if err != nil {
			return fail(fmt.Errorf("field %q: %w: %s", fieldID, ErrInvalidFieldValue, err))
		}
		text, err := ft.Type.FormatValue(converted)
		if err != nil {
			return fail(fmt.Errorf("field %q: %w", fieldID, err))
		}
		f, _ := n.Field(fieldID)
		f.Value = text
	}

	g.addNode(n)
	ctxlog.FromContext(ctx).Debug("Initial node placed.", "node_id", id, "template", t.ID)
	return id, nil
}

func (g *Graph) placeInitialConnection(ctx context.Context, hostID string, ic *config.InitialConnection, placed map[string]string) error {
	host, t, err := g.resolveNode(hostID)
	if err != nil {
		return err
	}
	st, ok := t.Slot(ic.Slot)
	if !ok {
		for i := range t.Slots {
			if t.Slots[i].Name == ic.Slot {
				st, ok = &t.Slots[i], true
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("initial connection from %q: %w", hostID, notFound("slot", ic.Slot))
	}
	targetID, ok := placed[ic.Target]
	if !ok {
		return fmt.Errorf("initial connection from %q: %w", hostID, notFound("node", ic.Target))
	}
	_, targetTmpl, err := g.resolveNode(targetID)
	if err != nil {
		return fmt.Errorf("initial connection from %q: %w", hostID, err)
	}
	if !st.Allows(targetTmpl.Name) {
		return fmt.Errorf("initial connection from %q: %w: slot %q does not accept template %q", hostID, ErrDisallowedTarget, st.Name, targetTmpl.Name)
	}

	c := model.Connection{
		HostNodeID:   hostID,
		HostSlotID:   st.ID,
		TargetNodeID: targetID,
		TargetSlotID: model.IncomingSlotID,
		CanDelete:    ic.CanDelete,
	}
	s, _ := host.Slot(st.ID)
	s.Connections = append(s.Connections, c)
	ctxlog.FromContext(ctx).Debug("Initial connection placed.", "connection", c.String())
	return nil
}

func applyOverride(dst *bool, override *bool) {
	if override != nil {
		*dst = *override
	}
}
