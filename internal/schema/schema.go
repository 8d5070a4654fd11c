// Package schema holds the gohcl block structures of canvas definition files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Canvas Settings ---

// Canvas represents the optional `canvas` block. Unset attributes keep their
// defaults.
type Canvas struct {
	SlotRadius           *float64 `hcl:"slot_radius,optional"`
	ControlPointDistance *float64 `hcl:"control_point_distance,optional"`
	ContextMenuWidth     *float64 `hcl:"context_menu_width,optional"`
	ContextMenuHeight    *float64 `hcl:"context_menu_height,optional"`
	DefaultNodeWidth     *float64 `hcl:"default_node_width,optional"`
	DefaultNodeHeight    *float64 `hcl:"default_node_height,optional"`
	SnapToGrid           *bool    `hcl:"snap_to_grid,optional"`
	GridSize             *float64 `hcl:"grid_size,optional"`
	Mutable              *bool    `hcl:"mutable,optional"`
	Movable              *bool    `hcl:"movable,optional"`
	ZoomMin              *float64 `hcl:"zoom_min,optional"`
	ZoomMax              *float64 `hcl:"zoom_max,optional"`
	ZoomStep             *float64 `hcl:"zoom_step,optional"`
}

// --- Templates ---

// Slot represents a `slot` block inside a node template.
type Slot struct {
	ID                   string   `hcl:"id,label"`
	Name                 string   `hcl:"name,optional"`
	Side                 string   `hcl:"side"`
	Direction            string   `hcl:"direction,optional"`
	AllowedTargets       []string `hcl:"allowed_targets,optional"`
	MinConnections       *int     `hcl:"min_connections,optional"`
	MaxConnections       *int     `hcl:"max_connections,optional"`
	CanModifyConnections *bool    `hcl:"can_modify_connections,optional"`
}

// Field represents a `field` block. Type is a type keyword expression such
// as `bool`; Default is a literal of that type.
type Field struct {
	ID      string         `hcl:"id,label"`
	Name    string         `hcl:"name,optional"`
	Type    hcl.Expression `hcl:"type"`
	Default hcl.Expression `hcl:"default,optional"`
}

// NodeTemplate represents a `node_template` block.
type NodeTemplate struct {
	ID              string   `hcl:"id,label"`
	Name            string   `hcl:"name,optional"`
	MinInstances    *int     `hcl:"min_instances,optional"`
	MaxInstances    *int     `hcl:"max_instances,optional"`
	CanDelete       *bool    `hcl:"can_delete,optional"`
	CanCreate       *bool    `hcl:"can_create,optional"`
	CanModifySlots  *bool    `hcl:"can_modify_slots,optional"`
	CanModifyFields *bool    `hcl:"can_modify_fields,optional"`
	DefaultWidth    *float64 `hcl:"default_width,optional"`
	DefaultHeight   *float64 `hcl:"default_height,optional"`
	Slots           []*Slot  `hcl:"slot,block"`
	Fields          []*Field `hcl:"field,block"`
}

// TemplateGroup represents a `template_group` block.
type TemplateGroup struct {
	ID        string   `hcl:"id,label"`
	Name      string   `hcl:"name,optional"`
	Templates []string `hcl:"templates"`
}

// --- Initial Nodes ---

// Connection represents a `connection` block inside a node.
type Connection struct {
	Slot      string `hcl:"slot"`
	Target    string `hcl:"target"`
	CanDelete *bool  `hcl:"can_delete,optional"`
}

// Node represents a `node` block placed before interactive use. Fields is an
// object literal of initial field values keyed by field id.
type Node struct {
	ID                   string         `hcl:"id,label"`
	Template             string         `hcl:"template"`
	X                    float64        `hcl:"x,optional"`
	Y                    float64        `hcl:"y,optional"`
	CanDelete            *bool          `hcl:"can_delete,optional"`
	CanMove              *bool          `hcl:"can_move,optional"`
	CanModifyConnections *bool          `hcl:"can_modify_connections,optional"`
	CanModifyFields      *bool          `hcl:"can_modify_fields,optional"`
	Fields               hcl.Expression `hcl:"fields,optional"`
	Connections          []*Connection  `hcl:"connection,block"`
}

// File represents the top-level structure of one canvas file. Unknown blocks
// and attributes are decode errors.
type File struct {
	Canvas    *Canvas          `hcl:"canvas,block"`
	Templates []*NodeTemplate  `hcl:"node_template,block"`
	Groups    []*TemplateGroup `hcl:"template_group,block"`
	Nodes     []*Node          `hcl:"node,block"`
}
