// Package geometry holds the 2D helpers shared by hit testing and rendering:
// slot anchors, connection curves and the screen/graph view transform.
package geometry

import (
	"math"

	"github.com/specialistvlad/nodecanvas/internal/model"
)

const (
	// BezierSamples is the number of uniform parameter samples used when
	// measuring the distance to a connection curve.
	BezierSamples = 50
	// ConnectionHitThreshold is the distance below which a point hits a
	// connection curve.
	ConnectionHitThreshold = 5.0
)

// Point is a position in graph or screen space.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// NodeRect returns the rectangle covered by a node.
func NodeRect(n *model.NodeInstance) Rect {
	return Rect{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
}

// Normal returns the outward unit normal of a node side.
func Normal(s model.Side) (dx, dy float64) {
	switch s {
	case model.SideLeft:
		return -1, 0
	case model.SideRight:
		return 1, 0
	case model.SideTop:
		return 0, -1
	default:
		return 0, 1
	}
}

// SlotAnchor returns the centre of a slot. Slots sharing a side are spaced
// evenly along it in declaration order; outgoing slots sit one radius outside
// the boundary, incoming slots on it.
func SlotAnchor(n *model.NodeInstance, t *model.NodeTemplate, slotID string, radius float64) (Point, bool) {
	st, ok := t.Slot(slotID)
	if !ok {
		return Point{}, false
	}
	onSide := t.SlotsOnSide(st.Side)
	idx := 0
	for i, s := range onSide {
		if s.ID == slotID {
			idx = i
			break
		}
	}

	var p Point
	switch st.Side {
	case model.SideLeft, model.SideRight:
		spacing := n.Height / float64(len(onSide)+1)
		p.Y = n.Y + spacing*float64(idx+1)
		p.X = n.X
		if st.Side == model.SideRight {
			p.X = n.X + n.Width
		}
	default:
		spacing := n.Width / float64(len(onSide)+1)
		p.X = n.X + spacing*float64(idx+1)
		p.Y = n.Y
		if st.Side == model.SideBottom {
			p.Y = n.Y + n.Height
		}
	}

	if st.Direction == model.Outgoing {
		dx, dy := Normal(st.Side)
		p = p.Add(dx*radius, dy*radius)
	}
	return p, true
}

// Bezier is a cubic Bézier curve.
type Bezier struct {
	P0, P1, P2, P3 Point
}

// ConnectionCurve builds the curve drawn between two slots. Each control
// point is its endpoint pushed outward along that slot's side normal.
func ConnectionCurve(from Point, fromSide model.Side, to Point, toSide model.Side, controlDistance float64) Bezier {
	fdx, fdy := Normal(fromSide)
	tdx, tdy := Normal(toSide)
	return Bezier{
		P0: from,
		P1: from.Add(fdx*controlDistance, fdy*controlDistance),
		P2: to.Add(tdx*controlDistance, tdy*controlDistance),
		P3: to,
	}
}

// At evaluates the curve at parameter t in [0, 1].
func (b Bezier) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	c1 := 3 * u * u * t
	c2 := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*b.P0.X + c1*b.P1.X + c2*b.P2.X + d*b.P3.X,
		Y: a*b.P0.Y + c1*b.P1.Y + c2*b.P2.Y + d*b.P3.Y,
	}
}

// Distance returns the minimum distance from p to the curve over
// BezierSamples uniform samples, endpoints included.
func (b Bezier) Distance(p Point) float64 {
	best := math.Inf(1)
	for i := 0; i < BezierSamples; i++ {
		t := float64(i) / (BezierSamples - 1)
		if d := b.At(t).Dist(p); d < best {
			best = d
		}
	}
	return best
}

// Hit reports whether p is within ConnectionHitThreshold of the curve.
func (b Bezier) Hit(p Point) bool {
	return b.Distance(p) < ConnectionHitThreshold
}
