package graph

import (
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/specialistvlad/nodecanvas/internal/nodeid"
	"github.com/specialistvlad/nodecanvas/internal/registry"
)

// Graph is the owning aggregate of templates and node instances.
type Graph struct {
	registry *registry.Registry
	nodes    map[string]*model.NodeInstance
	// order keeps insertion order so hit testing is deterministic.
	order  []string
	events *event.Broadcaster
	newID  nodeid.Generator
}

// Option configures a Graph.
type Option func(*Graph)

// WithBroadcaster publishes graph events on b instead of a private
// broadcaster.
func WithBroadcaster(b *event.Broadcaster) Option {
	return func(g *Graph) { g.events = b }
}

// WithIDGenerator replaces the default UUID node id generator.
func WithIDGenerator(gen nodeid.Generator) Option {
	return func(g *Graph) { g.newID = gen }
}

// New creates an empty graph over the templates of reg.
func New(reg *registry.Registry, opts ...Option) *Graph {
	g := &Graph{
		registry: reg,
		nodes:    make(map[string]*model.NodeInstance),
		newID:    nodeid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.events == nil {
		g.events = event.NewBroadcaster()
	}
	return g
}

// Events returns the broadcaster the graph publishes on.
func (g *Graph) Events() *event.Broadcaster { return g.events }

// Registry returns the template registry.
func (g *Graph) Registry() *registry.Registry { return g.registry }

// Templates returns every template in registration order.
func (g *Graph) Templates() []*model.NodeTemplate { return g.registry.All() }

// Template returns the template with the given id.
func (g *Graph) Template(id string) (*model.NodeTemplate, bool) { return g.registry.Get(id) }

// TemplateByName returns the template with the given display name.
func (g *Graph) TemplateByName(name string) (*model.NodeTemplate, bool) {
	return g.registry.ByName(name)
}

// Node returns the live node instance. Callers outside command execution may
// only change its position.
func (g *Graph) Node(id string) (*model.NodeInstance, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns the node instances in insertion order.
func (g *Graph) Nodes() []*model.NodeInstance {
	out := make([]*model.NodeInstance, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of node instances.
func (g *Graph) Len() int { return len(g.order) }

// MoveNode sets the stored position of a node.
func (g *Graph) MoveNode(id string, x, y float64) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.X, n.Y = x, y
	return true
}

// InstanceCount returns the number of live instances of a template.
func (g *Graph) InstanceCount(templateID string) int {
	count := 0
	for _, n := range g.nodes {
		if n.TemplateID == templateID {
			count++
		}
	}
	return count
}

// NodeConnections returns the connections hosted by a node.
func (g *Graph) NodeConnections(nodeID string) []model.Connection {
	n, ok := g.nodes[nodeID]
	if !ok {
		return nil
	}
	return n.Connections()
}

// IncomingConnections returns every connection targeting the node. This scans
// the whole graph since connections are only stored on their host.
func (g *Graph) IncomingConnections(nodeID string) []model.Connection {
	var out []model.Connection
	for _, id := range g.order {
		for _, c := range g.nodes[id].Connections() {
			if c.TargetNodeID == nodeID {
				out = append(out, c)
			}
		}
	}
	return out
}

// Connections returns every connection in the graph, grouped by host node in
// insertion order.
func (g *Graph) Connections() []model.Connection {
	var out []model.Connection
	for _, id := range g.order {
		out = append(out, g.nodes[id].Connections()...)
	}
	return out
}

// resolveNode looks up a node and its template.
func (g *Graph) resolveNode(nodeID string) (*model.NodeInstance, *model.NodeTemplate, error) {
	n, ok := g.nodes[nodeID]
	if !ok {
		return nil, nil, notFound("node", nodeID)
	}
	t, ok := g.registry.Get(n.TemplateID)
	if !ok {
		return nil, nil, notFound("template", n.TemplateID)
	}
	return n, t, nil
}

func resolveSlot(t *model.NodeTemplate, n *model.NodeInstance, slotID string) (*model.SlotTemplate, *model.SlotInstance, error) {
	st, ok := t.Slot(slotID)
	if !ok {
		return nil, nil, notFound("slot", t.ID+"."+slotID)
	}
	s, ok := n.Slot(slotID)
	if !ok {
		return nil, nil, notFound("slot", n.ID+":"+slotID)
	}
	return st, s, nil
}

// addNode stores n and records its insertion order.
func (g *Graph) addNode(n *model.NodeInstance) {
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

func (g *Graph) removeNode(id string) {
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// freshID returns a generated id not used by any node.
func (g *Graph) freshID() string {
	for {
		id := g.newID()
		if _, taken := g.nodes[id]; !taken {
			return id
		}
	}
}
