package app

import (
	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/interaction"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// Frame is what a renderer sees during one Render call. Graph and State are
// read-only; menu item bounds are the only write-back.
type Frame struct {
	Graph    *graph.Graph
	State    *interaction.State
	Settings config.Settings

	engine *interaction.Engine
}

// Curve returns the screen-independent curve of a connection.
func (f Frame) Curve(c model.Connection) (geometry.Bezier, bool) {
	return f.engine.Curve(c)
}

// SetMenuItemBounds records where item i of the open menu was drawn, in
// screen coordinates.
func (f Frame) SetMenuItemBounds(i int, r geometry.Rect) bool {
	return f.engine.SetMenuItemBounds(i, r)
}

// Render calls draw with the current frame unless a callback holds either
// lock, in which case the frame is skipped and ErrLockContended returned.
func (a *App) Render(draw func(Frame)) error {
	if !a.graphMu.TryLock() {
		return ErrLockContended
	}
	defer a.graphMu.Unlock()
	if !a.stateMu.TryLock() {
		return ErrLockContended
	}
	defer a.stateMu.Unlock()

	draw(Frame{
		Graph:    a.graph,
		State:    a.engine.State(),
		Settings: a.engine.Settings(),
		engine:   a.engine,
	})
	return nil
}
