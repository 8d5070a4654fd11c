// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "fmt"

// TargetKind classifies what a context menu was opened on.
type TargetKind int

const (
	TargetNode TargetKind = iota
	TargetSlot
	TargetField
	TargetConnection
)

// String returns the lowercase name of the kind.
func (k TargetKind) String() string {
	switch k {
	case TargetNode:
		return "node"
	case TargetSlot:
		return "slot"
	case TargetField:
		return "field"
	case TargetConnection:
		return "connection"
	default:
		return fmt.Sprintf("target(%d)", int(k))
	}
}

// Target describes the canvas element a context menu refers to. Which ids are
// set depends on Kind: NodeID always, SlotID for slots, FieldID for fields,
// Connection for connections.
type Target struct {
	Kind       TargetKind
	NodeID     string
	SlotID     string
	FieldID    string
	Connection Connection
}

// NodeTarget targets a whole node.
func NodeTarget(nodeID string) Target { return Target{Kind: TargetNode, NodeID: nodeID} }

// SlotTarget targets one slot of a node.
func SlotTarget(nodeID, slotID string) Target {
	return Target{Kind: TargetSlot, NodeID: nodeID, SlotID: slotID}
}

// FieldTarget targets one field of a node.
func FieldTarget(nodeID, fieldID string) Target {
	return Target{Kind: TargetField, NodeID: nodeID, FieldID: fieldID}
}

// ConnectionTarget targets a connection.
func ConnectionTarget(c Connection) Target {
	return Target{Kind: TargetConnection, NodeID: c.HostNodeID, Connection: c}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetSlot:
		return fmt.Sprintf("slot %s:%s", t.NodeID, t.SlotID)
	case TargetField:
		return fmt.Sprintf("field %s.%s", t.NodeID, t.FieldID)
	case TargetConnection:
		return "connection " + t.Connection.String()
	default:
		return "node " + t.NodeID
	}
}
