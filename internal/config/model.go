package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a canvas
// definition: visual and behavioral settings, node templates and the nodes
// placed before interactive use.
type Model struct {
	Settings  Settings
	Templates []*NodeTemplate
	Groups    []*TemplateGroup
	Nodes     []*InitialNode
}

// NewModel returns an empty model with default settings.
func NewModel() *Model {
	return &Model{Settings: DefaultSettings()}
}

// Settings holds the canvas-wide behavior and geometry knobs.
type Settings struct {
	SlotRadius           float64
	ControlPointDistance float64
	ContextMenuWidth     float64
	ContextMenuHeight    float64
	DefaultNodeWidth     float64
	DefaultNodeHeight    float64

	SnapToGrid bool
	GridSize   float64

	// Mutable=false forbids every command issued from interaction.
	Mutable bool
	// Movable=false disables panning the view.
	Movable bool

	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64
}

// DefaultSettings returns the settings used when a canvas file omits them.
func DefaultSettings() Settings {
	return Settings{
		SlotRadius:           12,
		ControlPointDistance: 75,
		ContextMenuWidth:     400,
		ContextMenuHeight:    100,
		DefaultNodeWidth:     150,
		DefaultNodeHeight:    100,
		SnapToGrid:           false,
		GridSize:             20,
		Mutable:              true,
		Movable:              true,
		ZoomMin:              0.1,
		ZoomMax:              5.0,
		ZoomStep:             1.1,
	}
}

// --- Template Definitions ---

// NodeTemplate is the format-agnostic representation of a node template.
type NodeTemplate struct {
	ID     string
	Name   string
	Slots  []*SlotTemplate
	Fields []*FieldTemplate

	MinInstances *int
	MaxInstances *int

	CanDelete       bool
	CanCreate       bool
	CanModifySlots  bool
	CanModifyFields bool

	DefaultWidth  float64
	DefaultHeight float64
}

// SlotTemplate is the format-agnostic representation of a slot.
type SlotTemplate struct {
	ID        string
	Name      string
	Side      string
	Direction string
	// AllowedTargets are template names.
	AllowedTargets       []string
	MinConnections       int
	MaxConnections       *int
	CanModifyConnections bool
}

// FieldTemplate is the format-agnostic representation of a field.
type FieldTemplate struct {
	ID      string
	Name    string
	Type    cty.Type
	Default cty.Value
}

// TemplateGroup is a named bundle of template names shown together by a
// toolbar.
type TemplateGroup struct {
	ID        string
	Name      string
	Templates []string
}

// --- Initial Nodes ---

// InitialNode describes a node placed during bootstrap.
type InitialNode struct {
	// ID is optional; a fresh id is generated when empty.
	ID string
	// Template is the template *name*.
	Template string
	X, Y     float64

	// Capability overrides; nil keeps the template-derived default.
	CanDelete            *bool
	CanMove              *bool
	CanModifyConnections *bool
	CanModifyFields      *bool

	// Fields maps field template ids to initial values.
	Fields      map[string]cty.Value
	Connections []*InitialConnection
}

// InitialConnection describes an edge created during bootstrap. It bypasses
// capability locks but still requires its endpoints to exist.
type InitialConnection struct {
	// Slot is the host slot id or name on the owning initial node.
	Slot string
	// Target is the id of another initial node.
	Target    string
	CanDelete bool
}
