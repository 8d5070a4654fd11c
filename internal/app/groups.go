package app

import (
	"fmt"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/registry"
)

// AllTemplatesGroup names the group offered when a canvas defines none.
const AllTemplatesGroup = "All Templates"

// TemplateGroup is a named toolbar section.
type TemplateGroup struct {
	ID        string
	Name      string
	Templates []*model.NodeTemplate
}

// TemplateGroups returns the groups a toolbar offers for node creation. Group
// entries are resolved by template name or id. Without configured groups, a
// single group lists every template that allows creation.
func (a *App) TemplateGroups() []TemplateGroup {
	if len(a.model.Groups) == 0 {
		all := TemplateGroup{ID: "all", Name: AllTemplatesGroup}
		for _, t := range a.registry.All() {
			if t.Capabilities.CanCreate {
				all.Templates = append(all.Templates, t)
			}
		}
		return []TemplateGroup{all}
	}

	out := make([]TemplateGroup, 0, len(a.model.Groups))
	for _, g := range a.model.Groups {
		group := TemplateGroup{ID: g.ID, Name: g.Name}
		for _, ref := range g.Templates {
			if t, ok := a.registry.Lookup(ref); ok {
				group.Templates = append(group.Templates, t)
			}
		}
		out = append(out, group)
	}
	return out
}

// CanCreate reports whether a node of the template could be placed now, so a
// toolbar can disable its button.
func (a *App) CanCreate(templateID string) error {
	a.graphMu.Lock()
	defer a.graphMu.Unlock()
	return a.graph.CanCreate(templateID)
}

func validateGroups(reg *registry.Registry, groups []*config.TemplateGroup) error {
	for _, g := range groups {
		for _, ref := range g.Templates {
			if _, ok := reg.Lookup(ref); !ok {
				return fmt.Errorf("template group %q: '%s' does not name a registered template%s", g.ID, ref, reg.Hint(ref))
			}
		}
	}
	return nil
}
