package graph

import (
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// check is one level of a capability chain.
type check struct {
	level   Level
	flag    string
	subject string
	allowed bool
}

// evaluate returns a CapabilityError for the first check that is not allowed.
func evaluate(chain ...check) error {
	for _, c := range chain {
		if !c.allowed {
			return &CapabilityError{Level: c.level, Flag: c.flag, Subject: c.subject}
		}
	}
	return nil
}

// connectionChain gates creating and deleting connections on a host slot.
func connectionChain(t *model.NodeTemplate, n *model.NodeInstance, st *model.SlotTemplate, s *model.SlotInstance) error {
	return evaluate(
		check{LevelTemplate, "can_modify_slots", t.ID, t.Capabilities.CanModifySlots},
		check{LevelInstance, "can_modify_connections", n.ID, n.Capabilities.CanModifyConnections},
		check{LevelSlotTemplate, "can_modify_connections", t.ID + "." + st.ID, st.CanModifyConnections},
		check{LevelSlotInstance, "can_modify", n.ID + ":" + s.SlotTemplateID, s.CanModify},
	)
}

// deleteNodeChain gates DeleteNode.
func deleteNodeChain(t *model.NodeTemplate, n *model.NodeInstance) error {
	return evaluate(
		check{LevelTemplate, "can_delete", t.ID, t.Capabilities.CanDelete},
		check{LevelInstance, "can_delete", n.ID, n.Capabilities.CanDelete},
	)
}

// fieldChain gates UpdateField. The field instance is nil when it has not
// been resolved yet, in which case only the node level is evaluated.
func fieldChain(n *model.NodeInstance, f *model.FieldInstance) error {
	chain := []check{{LevelInstance, "can_modify_fields", n.ID, n.Capabilities.CanModifyFields}}
	if f != nil {
		chain = append(chain, check{LevelField, "can_modify", n.ID + "." + f.FieldTemplateID, f.CanModify})
	}
	return evaluate(chain...)
}

// CanCreate reports whether a node of the template may be created now.
func (g *Graph) CanCreate(templateID string) error {
	t, ok := g.registry.Get(templateID)
	if !ok {
		return notFound("template", templateID)
	}
	return g.checkCreate(t)
}

// CanDeleteNode reports whether DeleteNode would pass its capability and
// instance-floor checks. Connection removal is not simulated.
func (g *Graph) CanDeleteNode(nodeID string) error {
	n, t, err := g.resolveNode(nodeID)
	if err != nil {
		return err
	}
	if err := deleteNodeChain(t, n); err != nil {
		return err
	}
	return g.checkFloor(t)
}

// CanModifyConnections reports whether connections on the slot may be
// created or deleted.
func (g *Graph) CanModifyConnections(nodeID, slotID string) error {
	n, t, err := g.resolveNode(nodeID)
	if err != nil {
		return err
	}
	st, s, err := resolveSlot(t, n, slotID)
	if err != nil {
		return err
	}
	return connectionChain(t, n, st, s)
}

// CanModifyField reports whether the field may be updated.
func (g *Graph) CanModifyField(nodeID, fieldID string) error {
	n, ok := g.nodes[nodeID]
	if !ok {
		return notFound("node", nodeID)
	}
	f, ok := n.Field(fieldID)
	if !ok {
		return notFound("field", fieldID)
	}
	return fieldChain(n, f)
}
