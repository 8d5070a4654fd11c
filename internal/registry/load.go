package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// PopulateFromModel translates and registers every template of the config
// model, in declaration order.
func (r *Registry) PopulateFromModel(ctx context.Context, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading templates from config model...", "count", len(m.Templates))

	for _, def := range m.Templates {
		t, err := TemplateFromConfig(def, m.Settings)
		if err != nil {
			return fmt.Errorf("failed to translate template %q: %w", def.ID, err)
		}
		if err := r.Register(ctx, t); err != nil {
			return err
		}
	}

	logger.Info("Registry loaded successfully.", "templates_loaded", r.Len())
	return nil
}

// TemplateFromConfig converts a config template into the model form. Missing
// sizes fall back to the canvas defaults.
func TemplateFromConfig(def *config.NodeTemplate, settings config.Settings) (model.NodeTemplate, error) {
	t := model.NodeTemplate{
		ID:           def.ID,
		Name:         def.Name,
		MinInstances: def.MinInstances,
		MaxInstances: def.MaxInstances,
		Capabilities: model.Capabilities{
			CanDelete:       def.CanDelete,
			CanCreate:       def.CanCreate,
			CanModifySlots:  def.CanModifySlots,
			CanModifyFields: def.CanModifyFields,
		},
		DefaultWidth:  def.DefaultWidth,
		DefaultHeight: def.DefaultHeight,
	}
	if t.DefaultWidth <= 0 {
		t.DefaultWidth = settings.DefaultNodeWidth
	}
	if t.DefaultHeight <= 0 {
		t.DefaultHeight = settings.DefaultNodeHeight
	}

	for _, s := range def.Slots {
		side, err := model.ParseSide(s.Side)
		if err != nil {
			return t, fmt.Errorf("slot %q: %w", s.ID, err)
		}
		dir, err := model.ParseDirection(s.Direction)
		if err != nil {
			return t, fmt.Errorf("slot %q: %w", s.ID, err)
		}
		t.Slots = append(t.Slots, model.SlotTemplate{
			ID:                   s.ID,
			Name:                 s.Name,
			Side:                 side,
			Direction:            dir,
			AllowedTargets:       s.AllowedTargets,
			MinConnections:       s.MinConnections,
			MaxConnections:       s.MaxConnections,
			CanModifyConnections: s.CanModifyConnections,
		})
	}

	for _, f := range def.Fields {
		ft, err := model.FieldTypeFromCty(f.Type)
		if err != nil {
			return t, fmt.Errorf("field %q: %w", f.ID, err)
		}
		text, err := defaultText(ft, f.Default)
		if err != nil {
			return t, fmt.Errorf("field %q default: %w", f.ID, err)
		}
		t.Fields = append(t.Fields, model.FieldTemplate{
			ID:      f.ID,
			Name:    f.Name,
			Type:    ft,
			Default: text,
		})
	}
	return t, nil
}

// defaultText renders a field default, using the type's zero value when the
// default is absent.
func defaultText(ft model.FieldType, v cty.Value) (string, error) {
	if v.IsNull() {
		switch ft {
		case model.FieldBoolean:
			return "false", nil
		case model.FieldInteger:
			return "0", nil
		default:
			return "", nil
		}
	}
	return ft.FormatValue(v)
}
