// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the tagged command variants routed through the graph's
// single execution entry point.
package model

import "fmt"

// Command is a mutation request. The concrete types below are the only
// implementations.
type Command interface {
	// Kind returns a stable name for logs and relayed events.
	Kind() string
	fmt.Stringer
	isCommand()
}

// CreateNode places a new instance of a template.
type CreateNode struct {
	TemplateID string
	X, Y       float64
}

// DeleteNode removes a node and every connection touching it.
type DeleteNode struct {
	NodeID string
}

// CreateConnection connects a host slot to a target slot.
type CreateConnection struct {
	Connection Connection
}

// DeleteConnection removes one connection from its host slot.
type DeleteConnection struct {
	Connection Connection
}

// DeleteSlotConnections clears every connection on one slot of a node.
type DeleteSlotConnections struct {
	NodeID string
	SlotID string
}

// UpdateField replaces the text value of one field.
type UpdateField struct {
	NodeID  string
	FieldID string
	Value   string
}

func (CreateNode) Kind() string            { return "create_node" }
func (DeleteNode) Kind() string            { return "delete_node" }
func (CreateConnection) Kind() string      { return "create_connection" }
func (DeleteConnection) Kind() string      { return "delete_connection" }
func (DeleteSlotConnections) Kind() string { return "delete_slot_connections" }
func (UpdateField) Kind() string           { return "update_field" }

func (c CreateNode) String() string {
	return fmt.Sprintf("CreateNode(%s @ %.1f,%.1f)", c.TemplateID, c.X, c.Y)
}
func (c DeleteNode) String() string { return fmt.Sprintf("DeleteNode(%s)", c.NodeID) }
func (c CreateConnection) String() string {
	return fmt.Sprintf("CreateConnection(%s)", c.Connection)
}
func (c DeleteConnection) String() string {
	return fmt.Sprintf("DeleteConnection(%s)", c.Connection)
}
func (c DeleteSlotConnections) String() string {
	return fmt.Sprintf("DeleteSlotConnections(%s:%s)", c.NodeID, c.SlotID)
}
func (c UpdateField) String() string {
	return fmt.Sprintf("UpdateField(%s.%s = %q)", c.NodeID, c.FieldID, c.Value)
}

func (CreateNode) isCommand()            {}
func (DeleteNode) isCommand()            {}
func (CreateConnection) isCommand()      {}
func (DeleteConnection) isCommand()      {}
func (DeleteSlotConnections) isCommand() {}
func (UpdateField) isCommand()           {}
