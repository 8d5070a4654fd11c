package graph

import (
	"fmt"
)

// Violation describes a slot whose connection count is outside its
// [min_connections, max_connections] range.
type Violation struct {
	NodeID string
	SlotID string
	Count  int
	Min    int
	// Max is nil for unbounded slots.
	Max *int
}

func (v Violation) String() string {
	bound := "unbounded"
	if v.Max != nil {
		bound = fmt.Sprintf("%d", *v.Max)
	}
	return fmt.Sprintf("node %q slot %q holds %d connections, want [%d, %s]", v.NodeID, v.SlotID, v.Count, v.Min, bound)
}

// Validate walks every slot of every node and reports cardinality
// violations. Minimums are only checked here, never at mutation time.
func (g *Graph) Validate() []Violation {
	var out []Violation
	for _, n := range g.Nodes() {
		t, ok := g.registry.Get(n.TemplateID)
		if !ok {
			continue
		}
		for _, s := range n.Slots {
			st, ok := t.Slot(s.SlotTemplateID)
			if !ok {
				continue
			}
			if count := len(s.Connections); !st.InRange(count) {
				out = append(out, Violation{
					NodeID: n.ID,
					SlotID: st.ID,
					Count:  count,
					Min:    st.MinConnections,
					Max:    st.MaxConnections,
				})
			}
		}
	}
	return out
}

// IsGraphValid reports whether every slot's connection count is in range.
func (g *Graph) IsGraphValid() bool {
	return len(g.Validate()) == 0
}
