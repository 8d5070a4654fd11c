package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/nodeid"
)

// ErrDuplicateTemplate is returned when a template id is registered twice.
var ErrDuplicateTemplate = errors.New("template already registered")

// Registry holds all the registered node templates for a single canvas.
type Registry struct {
	templates map[string]*model.NodeTemplate
	order     []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		templates: make(map[string]*model.NodeTemplate),
	}
}

// Register validates t, appends the implicit incoming slot and stores a
// private copy of it.
func (r *Registry) Register(ctx context.Context, t model.NodeTemplate) error {
	logger := ctxlog.FromContext(ctx).With("template_id", t.ID)

	if err := checkTemplate(&t); err != nil {
		return fmt.Errorf("template %q: %w", t.ID, err)
	}
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.ID)
	}

	stored := copyTemplate(&t)
	stored.Slots = append(stored.Slots, model.IncomingSlotTemplate())
	r.templates[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	logger.Debug("Registered node template.", "name", stored.Name, "slots", len(stored.Slots), "fields", len(stored.Fields))
	return nil
}

// Get returns the template with the given id.
func (r *Registry) Get(id string) (*model.NodeTemplate, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// ByName returns the first registered template with the given display name.
func (r *Registry) ByName(name string) (*model.NodeTemplate, bool) {
	for _, id := range r.order {
		if t := r.templates[id]; t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Lookup resolves ref as a template id first and as a name second.
func (r *Registry) Lookup(ref string) (*model.NodeTemplate, bool) {
	if t, ok := r.Get(ref); ok {
		return t, true
	}
	return r.ByName(ref)
}

// All returns the templates in registration order.
func (r *Registry) All() []*model.NodeTemplate {
	out := make([]*model.NodeTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.order)
}

// checkTemplate performs the structural checks that need no other template.
func checkTemplate(t *model.NodeTemplate) error {
	if err := nodeid.Validate(t.ID); err != nil {
		return err
	}
	if t.MinInstances != nil && *t.MinInstances < 0 {
		return fmt.Errorf("min_instances must not be negative")
	}
	if t.MaxInstances != nil && *t.MaxInstances < 0 {
		return fmt.Errorf("max_instances must not be negative")
	}
	if t.MinInstances != nil && t.MaxInstances != nil && *t.MinInstances > *t.MaxInstances {
		return fmt.Errorf("min_instances (%d) exceeds max_instances (%d)", *t.MinInstances, *t.MaxInstances)
	}

	seenSlots := make(map[string]struct{}, len(t.Slots))
	for _, s := range t.Slots {
		if err := nodeid.Validate(s.ID); err != nil {
			return fmt.Errorf("slot: %w", err)
		}
		if s.ID == model.IncomingSlotID {
			return fmt.Errorf("slot id %q is reserved for the implicit incoming slot", s.ID)
		}
		if _, dup := seenSlots[s.ID]; dup {
			return fmt.Errorf("duplicate slot id %q", s.ID)
		}
		seenSlots[s.ID] = struct{}{}
		if s.MinConnections < 0 {
			return fmt.Errorf("slot %q: min_connections must not be negative", s.ID)
		}
		if s.MaxConnections != nil && *s.MaxConnections < s.MinConnections {
			return fmt.Errorf("slot %q: max_connections (%d) is below min_connections (%d)", s.ID, *s.MaxConnections, s.MinConnections)
		}
	}

	seenFields := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if err := nodeid.Validate(f.ID); err != nil {
			return fmt.Errorf("field: %w", err)
		}
		if _, dup := seenFields[f.ID]; dup {
			return fmt.Errorf("duplicate field id %q", f.ID)
		}
		seenFields[f.ID] = struct{}{}
		if err := f.Type.Validate(f.Default); err != nil {
			return fmt.Errorf("field %q default: %w", f.ID, err)
		}
	}
	return nil
}

func copyTemplate(t *model.NodeTemplate) *model.NodeTemplate {
	c := *t
	if c.Name == "" {
		c.Name = c.ID
	}
	c.Slots = make([]model.SlotTemplate, len(t.Slots))
	for i, s := range t.Slots {
		s.AllowedTargets = slices.Clone(s.AllowedTargets)
		if s.MaxConnections != nil {
			s.MaxConnections = model.Limit(*s.MaxConnections)
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		c.Slots[i] = s
	}
	c.Fields = slices.Clone(t.Fields)
	for i := range c.Fields {
		if c.Fields[i].Name == "" {
			c.Fields[i].Name = c.Fields[i].ID
		}
	}
	if t.MinInstances != nil {
		c.MinInstances = model.Limit(*t.MinInstances)
	}
	if t.MaxInstances != nil {
		c.MaxInstances = model.Limit(*t.MaxInstances)
	}
	return &c
}
