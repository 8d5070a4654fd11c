package registry

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a template name.
const maxSuggestDistance = 2

// Suggest returns the registered template name closest to ref, if one is
// within a small edit distance.
func (r *Registry) Suggest(ref string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, t := range r.All() {
		if d := levenshtein.ComputeDistance(ref, t.Name); d < bestDist {
			best, bestDist = t.Name, d
		}
	}
	return best, best != ""
}

// Hint formats a "did you mean" suffix for an unresolved reference, or "".
func (r *Registry) Hint(ref string) string {
	if name, ok := r.Suggest(ref); ok {
		return fmt.Sprintf(" (did you mean '%s'?)", name)
	}
	return ""
}
