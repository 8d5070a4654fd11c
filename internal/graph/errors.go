package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/nodecanvas/internal/model"
)

var (
	// ErrNotFound is wrapped when a template, node, slot, field or connection
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCapabilityLocked is wrapped by every CapabilityError.
	ErrCapabilityLocked = errors.New("capability locked")
	// ErrCardinality is wrapped when an instance or connection limit is hit.
	ErrCardinality = errors.New("cardinality violated")
	// ErrDuplicateConnection is wrapped when an identical edge already exists.
	ErrDuplicateConnection = errors.New("duplicate connection")
	// ErrDisallowedTarget is wrapped when the host slot does not accept the
	// target's template.
	ErrDisallowedTarget = errors.New("connection target not allowed")
	// ErrNilCommand is returned by ExecuteCommand for a nil command.
	ErrNilCommand = errors.New("nil command")
	// ErrInvalidFieldValue is wrapped when a value fails its field type rule.
	ErrInvalidFieldValue = model.ErrFieldValue
)

// Level is one step of a capability chain.
type Level int

const (
	LevelTemplate Level = iota
	LevelInstance
	LevelSlotTemplate
	LevelSlotInstance
	LevelConnection
	LevelField
)

func (l Level) String() string {
	switch l {
	case LevelTemplate:
		return "template"
	case LevelInstance:
		return "node"
	case LevelSlotTemplate:
		return "slot template"
	case LevelSlotInstance:
		return "slot"
	case LevelConnection:
		return "connection"
	case LevelField:
		return "field"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// CapabilityError reports the first locked level of a capability chain.
type CapabilityError struct {
	Level   Level
	Flag    string
	Subject string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s %q is locked: %s is false", e.Level, e.Subject, e.Flag)
}

func (e *CapabilityError) Unwrap() error { return ErrCapabilityLocked }

// ConnectionError wraps any failure to create a connection with the names of
// the host template and slot.
type ConnectionError struct {
	Connection   model.Connection
	TemplateName string
	SlotName     string
	Err          error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection creation failed (template %q, slot %q): %v", e.TemplateName, e.SlotName, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NodeError wraps a failure to create or delete a node.
type NodeError struct {
	Op           string
	NodeID       string
	TemplateName string
	Err          error
}

func (e *NodeError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("node %s failed (template %q): %v", e.Op, e.TemplateName, e.Err)
	}
	return fmt.Sprintf("node %s failed (node %q, template %q): %v", e.Op, e.NodeID, e.TemplateName, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// BatchError aggregates the failures of a best-effort batch.
type BatchError struct {
	Op    string
	Total int
	Errs  []error
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %d of %d failed: %s", e.Op, len(e.Errs), e.Total, strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error { return e.Errs }

// batch collects per-item failures.
type batch struct {
	op    string
	total int
	errs  []error
}

func (b *batch) add(err error) {
	b.total++
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

// err returns nil when every item succeeded.
func (b *batch) err() error {
	if len(b.errs) == 0 {
		return nil
	}
	return &BatchError{Op: b.op, Total: b.total, Errs: b.errs}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
