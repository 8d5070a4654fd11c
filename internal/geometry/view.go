package geometry

import "math"

// ViewTransform maps screen coordinates to graph coordinates:
// graph = (screen - pan) / zoom.
type ViewTransform struct {
	PanX, PanY float64
	Zoom       float64
}

// Identity returns a transform with no pan and zoom 1.
func Identity() ViewTransform {
	return ViewTransform{Zoom: 1}
}

// ToGraph converts a screen point to graph space.
func (v ViewTransform) ToGraph(p Point) Point {
	z := v.zoom()
	return Point{X: (p.X - v.PanX) / z, Y: (p.Y - v.PanY) / z}
}

// ToScreen converts a graph point to screen space.
func (v ViewTransform) ToScreen(p Point) Point {
	z := v.zoom()
	return Point{X: p.X*z + v.PanX, Y: p.Y*z + v.PanY}
}

// Pan shifts the view by a screen-space delta.
func (v *ViewTransform) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// ZoomAt multiplies the zoom by step^ticks, clamped to [minZoom, maxZoom],
// keeping the graph point under the screen point anchor fixed.
func (v *ViewTransform) ZoomAt(anchor Point, ticks, step, minZoom, maxZoom float64) {
	before := v.ToGraph(anchor)
	v.Zoom = clamp(v.zoom()*math.Pow(step, ticks), minZoom, maxZoom)

	after := v.ToScreen(before)
	v.PanX += anchor.X - after.X
	v.PanY += anchor.Y - after.Y
}

func (v ViewTransform) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
