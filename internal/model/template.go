// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the template (schema) side of the model.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// IncomingSlotID is the id of the implicit universal incoming slot injected
// into every template at registration.
const IncomingSlotID = "incoming"

// Side is the node boundary a slot sits on.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide converts a side keyword into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	default:
		return SideLeft, fmt.Errorf("unknown slot side %q", s)
	}
}

// Direction tells whether a slot hosts connections or receives them.
type Direction int

const (
	Incoming Direction = iota
	Outgoing
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	if d == Outgoing {
		return "outgoing"
	}
	return "incoming"
}

// ParseDirection converts a direction keyword into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "incoming", "in":
		return Incoming, nil
	case "outgoing", "out":
		return Outgoing, nil
	default:
		return Incoming, fmt.Errorf("unknown slot direction %q", s)
	}
}

// SlotTemplate is the schema of one connection point on a node.
type SlotTemplate struct {
	ID        string
	Name      string
	Side      Side
	Direction Direction
	// AllowedTargets holds the template *names* this slot may connect to.
	AllowedTargets []string
	MinConnections int
	// MaxConnections is nil when the slot is unbounded.
	MaxConnections       *int
	CanModifyConnections bool
}

// Allows reports whether a node of the named template may be a target.
func (st *SlotTemplate) Allows(templateName string) bool {
	return slices.Contains(st.AllowedTargets, templateName)
}

// HasRoom reports whether a slot currently holding count connections can take
// one more.
func (st *SlotTemplate) HasRoom(count int) bool {
	return st.MaxConnections == nil || count < *st.MaxConnections
}

// InRange reports whether count satisfies [MinConnections, MaxConnections].
func (st *SlotTemplate) InRange(count int) bool {
	if count < st.MinConnections {
		return false
	}
	return st.MaxConnections == nil || count <= *st.MaxConnections
}

// FieldTemplate is the schema of one editable value on a node.
type FieldTemplate struct {
	ID   string
	Name string
	Type FieldType
	// Default is the text form of the initial value.
	Default string
}

// Capabilities are the template-level capability flags.
type Capabilities struct {
	CanDelete       bool
	CanCreate       bool
	CanModifySlots  bool
	CanModifyFields bool
}

// NodeTemplate is the schema of a node kind.
type NodeTemplate struct {
	ID     string
	Name   string
	Slots  []SlotTemplate
	Fields []FieldTemplate

	// MinInstances and MaxInstances are nil when unconstrained.
	MinInstances *int
	MaxInstances *int

	Capabilities Capabilities

	DefaultWidth  float64
	DefaultHeight float64
}

// Slot returns the slot template with the given id.
func (t *NodeTemplate) Slot(id string) (*SlotTemplate, bool) {
	for i := range t.Slots {
		if t.Slots[i].ID == id {
			return &t.Slots[i], true
		}
	}
	return nil, false
}

// Field returns the field template with the given id.
func (t *NodeTemplate) Field(id string) (*FieldTemplate, bool) {
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// SlotsOnSide returns the slot templates on side s in declaration order.
func (t *NodeTemplate) SlotsOnSide(s Side) []*SlotTemplate {
	var out []*SlotTemplate
	for i := range t.Slots {
		if t.Slots[i].Side == s {
			out = append(out, &t.Slots[i])
		}
	}
	return out
}

// IncomingSlotTemplate returns the implicit universal incoming slot.
func IncomingSlotTemplate() SlotTemplate {
	return SlotTemplate{
		ID:                   IncomingSlotID,
		Name:                 "Incoming",
		Side:                 SideLeft,
		Direction:            Incoming,
		MinConnections:       0,
		MaxConnections:       nil,
		CanModifyConnections: true,
	}
}

// Limit is a convenience for building optional limits.
func Limit(n int) *int {
	return &n
}
