// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the instance side of the model: nodes, slots, fields and
// connections placed on the canvas.
package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Connection is a directed edge identified by its four endpoint ids. It is
// stored on the host slot only.
type Connection struct {
	HostNodeID   string
	HostSlotID   string
	TargetNodeID string
	TargetSlotID string
	CanDelete    bool
}

// SameEdge reports whether c and other join the same endpoints. CanDelete is
// not part of an edge's identity.
func (c Connection) SameEdge(other Connection) bool {
	return c.HostNodeID == other.HostNodeID &&
		c.HostSlotID == other.HostSlotID &&
		c.TargetNodeID == other.TargetNodeID &&
		c.TargetSlotID == other.TargetSlotID
}

// References reports whether nodeID is either endpoint of the connection.
func (c Connection) References(nodeID string) bool {
	return c.HostNodeID == nodeID || c.TargetNodeID == nodeID
}

// String renders the connection as host:slot->target:slot.
func (c Connection) String() string {
	return fmt.Sprintf("%s:%s->%s:%s", c.HostNodeID, c.HostSlotID, c.TargetNodeID, c.TargetSlotID)
}

// SlotInstance is the per-node realisation of a SlotTemplate.
type SlotInstance struct {
	NodeID         string
	NodeTemplateID string
	SlotTemplateID string
	// Connections lists edges hosted by this slot.
	Connections []Connection
	CanModify   bool
}

// FieldInstance holds the current text value of a field.
type FieldInstance struct {
	NodeID          string
	FieldTemplateID string
	Value           string
	CanModify       bool
}

// InstanceCapabilities are the instance-level capability flags.
type InstanceCapabilities struct {
	CanDelete            bool
	CanMove              bool
	CanModifyConnections bool
	CanModifyFields      bool
}

// NodeInstance is a node placed on the canvas.
type NodeInstance struct {
	ID         string
	TemplateID string
	X, Y       float64
	Width      float64
	Height     float64
	Slots      []SlotInstance
	Fields     []FieldInstance

	Capabilities InstanceCapabilities
}

// NewNodeInstance builds an instance of t with one slot per slot template and
// one field per field template, every field holding the template default.
// t is expected to already contain the implicit incoming slot.
func NewNodeInstance(t *NodeTemplate, id string, x, y float64) *NodeInstance {
	n := &NodeInstance{
		ID:         id,
		TemplateID: t.ID,
		X:          x,
		Y:          y,
		Width:      t.DefaultWidth,
		Height:     t.DefaultHeight,
		Slots:      make([]SlotInstance, 0, len(t.Slots)),
		Fields:     make([]FieldInstance, 0, len(t.Fields)),
		Capabilities: InstanceCapabilities{
			CanDelete:            t.Capabilities.CanDelete,
			CanMove:              true,
			CanModifyConnections: true,
			CanModifyFields:      t.Capabilities.CanModifyFields,
		},
	}
	for _, st := range t.Slots {
		n.Slots = append(n.Slots, SlotInstance{
			NodeID:         id,
			NodeTemplateID: t.ID,
			SlotTemplateID: st.ID,
			CanModify:      true,
		})
	}
	for _, ft := range t.Fields {
		n.Fields = append(n.Fields, FieldInstance{
			NodeID:          id,
			FieldTemplateID: ft.ID,
			Value:           ft.Default,
			CanModify:       true,
		})
	}
	return n
}

// Slot returns the slot instance realising the given slot template.
func (n *NodeInstance) Slot(slotTemplateID string) (*SlotInstance, bool) {
	for i := range n.Slots {
		if n.Slots[i].SlotTemplateID == slotTemplateID {
			return &n.Slots[i], true
		}
	}
	return nil, false
}

// Field returns the field instance realising the given field template.
func (n *NodeInstance) Field(fieldTemplateID string) (*FieldInstance, bool) {
	for i := range n.Fields {
		if n.Fields[i].FieldTemplateID == fieldTemplateID {
			return &n.Fields[i], true
		}
	}
	return nil, false
}

// Contains reports whether the point lies inside the node's rectangle,
// edges included.
func (n *NodeInstance) Contains(x, y float64) bool {
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// Connections returns a copy of every connection hosted by the node.
func (n *NodeInstance) Connections() []Connection {
	var out []Connection
	for _, s := range n.Slots {
		out = append(out, s.Connections...)
	}
	return out
}

// Clone returns a deep copy of the instance.
func (n *NodeInstance) Clone() *NodeInstance {
	c := *n
	c.Slots = make([]SlotInstance, len(n.Slots))
	for i, s := range n.Slots {
		s.Connections = append([]Connection(nil), s.Connections...)
		c.Slots[i] = s
	}
	c.Fields = append([]FieldInstance(nil), n.Fields...)
	return &c
}

// CtyValue returns the field value typed according to ft.
func (f *FieldInstance) CtyValue(ft *FieldTemplate) (cty.Value, error) {
	return ft.Type.ParseValue(f.Value)
}
