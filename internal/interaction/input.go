package interaction

import (
	"context"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// Key names understood by KeyDown.
const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)

// Zoom applies wheel ticks at a screen position. Positive ticks zoom in.
func (e *Engine) Zoom(ctx context.Context, x, y, ticks float64) {
	s := e.state
	s.View.ZoomAt(geometry.Point{X: x, Y: y}, ticks, e.settings.ZoomStep, e.settings.ZoomMin, e.settings.ZoomMax)
	ctxlog.FromContext(ctx).Debug("View zoomed.", "zoom", s.View.Zoom, "pan_x", s.View.PanX, "pan_y", s.View.PanY)
	e.layout.PersistView(ctx, s.View)
}

// KeyDown handles a key press. Escape cancels a field edit and a connection
// drag and closes the menu. Delete and Backspace delete the selected node.
func (e *Engine) KeyDown(ctx context.Context, key string) error {
	s := e.state
	switch key {
	case KeyEscape:
		s.FieldEdit = nil
		if s.ConnectionDrag != nil {
			s.ConnectionDrag = nil
			s.ArmedSlot = nil
			s.pressConsumed = true
		}
		e.closeMenu(ctx)
		return nil

	case KeyDelete, KeyBackspace:
		if s.FieldEdit != nil || s.Selected == "" {
			return nil
		}
		return e.execute(ctx, model.DeleteNode{NodeID: s.Selected})
	}
	return nil
}

// CommitFieldEdit writes value to the field being edited. The edit stays
// pending when the update is rejected.
func (e *Engine) CommitFieldEdit(ctx context.Context, value string) error {
	fe := e.state.FieldEdit
	if fe == nil {
		return ErrNoFieldEdit
	}
	if err := e.execute(ctx, model.UpdateField{NodeID: fe.NodeID, FieldID: fe.FieldID, Value: value}); err != nil {
		return err
	}
	e.state.FieldEdit = nil
	return nil
}

// CancelFieldEdit drops the pending field edit.
func (e *Engine) CancelFieldEdit() {
	e.state.FieldEdit = nil
}
