// internal/nodeid/nodeid.go
package nodeid

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/google/uuid"
)

// idRegex matches an acceptable identifier: a run of letters, digits and
// the separators `_ . : -`.
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// Generator produces a fresh identifier on every call.
type Generator func() string

// New returns a random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// Sequential returns a deterministic generator yielding prefix-1, prefix-2, ...
// It is safe for concurrent use.
func Sequential(prefix string) Generator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Validate checks that id is usable as an identifier.
func Validate(id string) error {
	if id == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if id == "." || id == ".." || id == "-" {
		return fmt.Errorf("invalid identifier: %q", id)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("invalid identifier format: %q", id)
	}
	return nil
}

// IsUUID reports whether id is a canonical UUID string.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
