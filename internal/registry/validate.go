package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
)

// ValidateRegistry checks references between templates: every allowed
// connection target must name a registered template.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, t := range r.All() {
		for _, s := range t.Slots {
			for _, target := range s.AllowedTargets {
				if _, ok := r.ByName(target); ok {
					continue
				}
				if _, ok := r.Get(target); ok {
					// Ids are accepted in canvas files, but the connect-time
					// rule compares names, so this target would never match.
					logger.Warn("Allowed target refers to a template id, not its name; the rule matches names only.", "template", t.ID, "slot", s.ID, "target", target)
					errs = append(errs, fmt.Sprintf("template '%s', slot '%s': allowed target '%s' is a template id, use the template name", t.ID, s.ID, target))
					continue
				}
				errs = append(errs, fmt.Sprintf("template '%s', slot '%s': allowed target '%s' does not name a registered template%s", t.ID, s.ID, target, r.Hint(target)))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "templates", r.Len())
	return nil
}
