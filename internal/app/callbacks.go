package app

import (
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/interaction"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// lock acquires the graph and then the state lock and returns the matching
// unlock. Callers defer it so a failing callback never leaves a lock held.
func (a *App) lock() func() {
	a.graphMu.Lock()
	a.stateMu.Lock()
	return func() {
		a.stateMu.Unlock()
		a.graphMu.Unlock()
	}
}

// PointerDown handles a button press at screen coordinates.
func (a *App) PointerDown(x, y float64) error {
	defer a.lock()()
	return a.engine.PointerDown(a.ctx, x, y)
}

// PointerMove handles pointer motion at screen coordinates.
func (a *App) PointerMove(x, y float64) {
	defer a.lock()()
	a.engine.PointerMove(a.ctx, x, y)
}

// PointerUp handles a button release at screen coordinates.
func (a *App) PointerUp(x, y float64) error {
	defer a.lock()()
	return a.engine.PointerUp(a.ctx, x, y)
}

// Zoom applies wheel ticks around the cursor.
func (a *App) Zoom(x, y, ticks float64) {
	defer a.lock()()
	a.engine.Zoom(a.ctx, x, y, ticks)
}

// KeyDown handles a key press; see the interaction.Key constants.
func (a *App) KeyDown(key string) error {
	defer a.lock()()
	return a.engine.KeyDown(a.ctx, key)
}

// SetMode switches between default and add-node interaction.
func (a *App) SetMode(mode interaction.Mode, templateID string) error {
	defer a.lock()()
	return a.engine.SetMode(mode, templateID)
}

// CommitFieldEdit applies the value of the pending field edit.
func (a *App) CommitFieldEdit(value string) error {
	defer a.lock()()
	return a.engine.CommitFieldEdit(a.ctx, value)
}

// CancelFieldEdit drops the pending field edit.
func (a *App) CancelFieldEdit() {
	defer a.lock()()
	a.engine.CancelFieldEdit()
}

// Execute runs a command issued directly by the host, such as a toolbar.
func (a *App) Execute(cmd model.Command) (graph.Result, error) {
	defer a.lock()()
	return a.engine.Execute(a.ctx, cmd)
}
