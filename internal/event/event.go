package event

import (
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// Event is implemented by every payload the Broadcaster carries.
type Event interface {
	// Type returns the stable wire name of the event.
	Type() string
}

// NodeMoved is published when a node drag ends. X and Y are the node's stored
// position after the drop.
type NodeMoved struct {
	NodeID string
	X, Y   float64
}

// ConnectionStarted is published when a connection drag leaves its slot.
type ConnectionStarted struct {
	NodeID string
	SlotID string
}

// ConnectionCompleted is published after a connection is stored.
type ConnectionCompleted struct {
	Connection model.Connection
}

// ConnectionFailed is published when a connection drag was released on a
// node but the connection was rejected.
type ConnectionFailed struct {
	Reason string
}

// ContextMenuOpened is published when a context menu opens on a target.
type ContextMenuOpened struct {
	Target model.Target
}

// ContextMenuClosed is published when an open context menu closes.
type ContextMenuClosed struct{}

// CommandExecuted is published after a command succeeded.
type CommandExecuted struct {
	Command model.Command
}

// CommandFailed is published after a command was rejected. Reason holds the
// full causal chain.
type CommandFailed struct {
	Command model.Command
	Reason  error
}

func (NodeMoved) Type() string           { return "node_moved" }
func (ConnectionStarted) Type() string   { return "connection_started" }
func (ConnectionCompleted) Type() string { return "connection_completed" }
func (ConnectionFailed) Type() string    { return "connection_failed" }
func (ContextMenuOpened) Type() string   { return "context_menu_opened" }
func (ContextMenuClosed) Type() string   { return "context_menu_closed" }
func (CommandExecuted) Type() string     { return "command_executed" }
func (CommandFailed) Type() string       { return "command_failed" }

// Fields flattens an event into log/wire friendly key-value pairs. The type
// name is not included.
func Fields(e Event) map[string]any {
	switch ev := e.(type) {
	case NodeMoved:
		return map[string]any{"node": ev.NodeID, "x": ev.X, "y": ev.Y}
	case ConnectionStarted:
		return map[string]any{"node": ev.NodeID, "slot": ev.SlotID}
	case ConnectionCompleted:
		return connectionFields(ev.Connection)
	case ConnectionFailed:
		return map[string]any{"reason": ev.Reason}
	case ContextMenuOpened:
		return map[string]any{"target": ev.Target.String(), "kind": ev.Target.Kind.String()}
	case CommandExecuted:
		return map[string]any{"command": ev.Command.Kind(), "detail": ev.Command.String()}
	case CommandFailed:
		out := map[string]any{"command": ev.Command.Kind(), "detail": ev.Command.String()}
		if ev.Reason != nil {
			out["reason"] = ev.Reason.Error()
		}
		return out
	default:
		return map[string]any{}
	}
}

func connectionFields(c model.Connection) map[string]any {
	return map[string]any{
		"host_node":   c.HostNodeID,
		"host_slot":   c.HostSlotID,
		"target_node": c.TargetNodeID,
		"target_slot": c.TargetSlotID,
		"can_delete":  c.CanDelete,
	}
}
