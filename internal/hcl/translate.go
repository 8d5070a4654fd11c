// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// applyCanvas overlays the attributes present in a canvas block.
func applyCanvas(s *config.Settings, c *schema.Canvas) {
	setFloat(&s.SlotRadius, c.SlotRadius)
	setFloat(&s.ControlPointDistance, c.ControlPointDistance)
	setFloat(&s.ContextMenuWidth, c.ContextMenuWidth)
	setFloat(&s.ContextMenuHeight, c.ContextMenuHeight)
	setFloat(&s.DefaultNodeWidth, c.DefaultNodeWidth)
	setFloat(&s.DefaultNodeHeight, c.DefaultNodeHeight)
	setFloat(&s.GridSize, c.GridSize)
	setFloat(&s.ZoomMin, c.ZoomMin)
	setFloat(&s.ZoomMax, c.ZoomMax)
	setFloat(&s.ZoomStep, c.ZoomStep)
	if c.SnapToGrid != nil {
		s.SnapToGrid = *c.SnapToGrid
	}
	if c.Mutable != nil {
		s.Mutable = *c.Mutable
	}
	if c.Movable != nil {
		s.Movable = *c.Movable
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// boolOr returns *v, or def when the attribute was omitted.
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// translateTemplate converts a node_template block. Names default to the id
// and every capability defaults to true.
func translateTemplate(ctx context.Context, s *schema.NodeTemplate) (*config.NodeTemplate, error) {
	t := &config.NodeTemplate{
		ID:              s.ID,
		Name:            s.Name,
		MinInstances:    s.MinInstances,
		MaxInstances:    s.MaxInstances,
		CanDelete:       boolOr(s.CanDelete, true),
		CanCreate:       boolOr(s.CanCreate, true),
		CanModifySlots:  boolOr(s.CanModifySlots, true),
		CanModifyFields: boolOr(s.CanModifyFields, true),
	}
	if t.Name == "" {
		t.Name = s.ID
	}
	setFloat(&t.DefaultWidth, s.DefaultWidth)
	setFloat(&t.DefaultHeight, s.DefaultHeight)

	for _, slot := range s.Slots {
		t.Slots = append(t.Slots, translateSlot(slot))
	}
	for _, f := range s.Fields {
		field, err := translateField(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("in node_template '%s', field '%s': %w", s.ID, f.ID, err)
		}
		t.Fields = append(t.Fields, field)
	}
	return t, nil
}

func translateSlot(s *schema.Slot) *config.SlotTemplate {
	slot := &config.SlotTemplate{
		ID:                   s.ID,
		Name:                 s.Name,
		Side:                 s.Side,
		Direction:            s.Direction,
		AllowedTargets:       s.AllowedTargets,
		MaxConnections:       s.MaxConnections,
		CanModifyConnections: boolOr(s.CanModifyConnections, true),
	}
	if slot.Name == "" {
		slot.Name = s.ID
	}
	if slot.Direction == "" {
		slot.Direction = "outgoing"
	}
	if s.MinConnections != nil {
		slot.MinConnections = *s.MinConnections
	}
	return slot
}

// translateField parses the type keyword and converts the default literal to
// it. An omitted default stays null.
func translateField(ctx context.Context, f *schema.Field) (*config.FieldTemplate, error) {
	typ, err := typeExprToCtyType(ctx, f.Type)
	if err != nil {
		return nil, err
	}
	field := &config.FieldTemplate{
		ID:      f.ID,
		Name:    f.Name,
		Type:    typ,
		Default: cty.NullVal(typ),
	}
	if field.Name == "" {
		field.Name = f.ID
	}

	val, err := literal(f.Default)
	if err != nil {
		return nil, fmt.Errorf("invalid default value: %w", err)
	}
	if val.IsNull() {
		return field, nil
	}
	converted, err := convert.Convert(val, typ)
	if err != nil {
		return nil, fmt.Errorf("default cannot be converted to %s: %w", typ.FriendlyName(), err)
	}
	field.Default = converted
	return field, nil
}

func translateGroup(s *schema.TemplateGroup) *config.TemplateGroup {
	g := &config.TemplateGroup{ID: s.ID, Name: s.Name, Templates: s.Templates}
	if g.Name == "" {
		g.Name = s.ID
	}
	return g
}

// translateNode converts a node block. Capability attributes are passed
// through as overrides; the fields object is split per field id.
func translateNode(ctx context.Context, s *schema.Node) (*config.InitialNode, error) {
	n := &config.InitialNode{
		ID:                   s.ID,
		Template:             s.Template,
		X:                    s.X,
		Y:                    s.Y,
		CanDelete:            s.CanDelete,
		CanMove:              s.CanMove,
		CanModifyConnections: s.CanModifyConnections,
		CanModifyFields:      s.CanModifyFields,
	}

	val, err := literal(s.Fields)
	if err != nil {
		return nil, fmt.Errorf("in node '%s', fields: %w", s.ID, err)
	}
	if !val.IsNull() {
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return nil, fmt.Errorf("in node '%s', fields must be an object, got %s", s.ID, val.Type().FriendlyName())
		}
		n.Fields = val.AsValueMap()
	}

	for _, c := range s.Connections {
		n.Connections = append(n.Connections, &config.InitialConnection{
			Slot:      c.Slot,
			Target:    c.Target,
			CanDelete: boolOr(c.CanDelete, true),
		})
	}
	return n, nil
}

// literal evaluates an expression without variables or functions.
func literal(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}
