package interaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// MenuRowHeight is the height of the title row and of every item row in the
// default menu layout.
const MenuRowHeight = 20.0

// Colors used by the default menu items.
const (
	ColorDanger = "#ff0000"
	ColorAction = "#0077ff"
	ColorInfo   = "#444444"
)

// MenuAction is what a menu item does when picked.
type MenuAction int

const (
	ActionDelete MenuAction = iota
	ActionDeleteAllSlotConnections
	ActionSetBooleanField
	ActionSetIntegerField
	ActionEditField
	// ActionNone marks an informational item.
	ActionNone
)

func (a MenuAction) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionDeleteAllSlotConnections:
		return "delete_all_slot_connections"
	case ActionSetBooleanField:
		return "set_boolean_field"
	case ActionSetIntegerField:
		return "set_integer_field"
	case ActionEditField:
		return "edit_field"
	case ActionNone:
		return "none"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// MenuItem is one entry of a context menu.
type MenuItem struct {
	Label  string
	Action MenuAction
	// Value is the field value written by the Set actions.
	Value string
	Color string
	// Bounds is the item's screen rectangle, nil until laid out.
	Bounds *geometry.Rect
}

// MenuProvider builds the title and items of a context menu.
type MenuProvider interface {
	Menu(g Graph, target model.Target) (title string, items []MenuItem)
}

// DefaultMenu is the built-in MenuProvider.
type DefaultMenu struct{}

// Menu implements MenuProvider.
func (DefaultMenu) Menu(g Graph, target model.Target) (string, []MenuItem) {
	switch target.Kind {
	case model.TargetConnection:
		return "Connection", []MenuItem{{Label: "Delete Connection", Action: ActionDelete, Color: ColorDanger}}

	case model.TargetSlot:
		title := "Slot: " + target.SlotID
		if st, ok := slotTemplate(g, target.NodeID, target.SlotID); ok {
			title = "Slot: " + st.Name
		}
		return title, []MenuItem{{Label: "Delete All Connections", Action: ActionDeleteAllSlotConnections, Color: ColorDanger}}

	case model.TargetField:
		return fieldMenu(g, target)

	default:
		title := "Node"
		if n, ok := g.Node(target.NodeID); ok {
			if t, ok := g.Template(n.TemplateID); ok {
				title = "Node: " + t.Name
			}
		}
		return title, []MenuItem{{Label: "Delete Node", Action: ActionDelete, Color: ColorDanger}}
	}
}

func fieldMenu(g Graph, target model.Target) (string, []MenuItem) {
	n, ok := g.Node(target.NodeID)
	if !ok {
		return "Field", nil
	}
	t, ok := g.Template(n.TemplateID)
	if !ok {
		return "Field", nil
	}
	ft, ok := t.Field(target.FieldID)
	if !ok {
		return "Field", nil
	}
	f, ok := n.Field(target.FieldID)
	if !ok {
		return "Field: " + ft.Name, nil
	}

	title := "Field: " + ft.Name
	if g.CanModifyField(n.ID, ft.ID) != nil {
		return title, []MenuItem{{Label: "Current: " + f.Value, Action: ActionNone, Color: ColorInfo}}
	}
	switch ft.Type {
	case model.FieldBoolean:
		return title, []MenuItem{
			{Label: "Set True", Action: ActionSetBooleanField, Value: "true", Color: ColorAction},
			{Label: "Set False", Action: ActionSetBooleanField, Value: "false", Color: ColorAction},
		}
	case model.FieldInteger:
		current, err := strconv.ParseInt(f.Value, 10, 32)
		items := []MenuItem{{Label: "Current: " + f.Value, Action: ActionEditField, Color: ColorInfo}}
		if err == nil {
			items = append(items,
				MenuItem{Label: "Increment (+1)", Action: ActionSetIntegerField, Value: strconv.FormatInt(current+1, 10), Color: ColorAction},
				MenuItem{Label: "Decrement (-1)", Action: ActionSetIntegerField, Value: strconv.FormatInt(current-1, 10), Color: ColorAction},
			)
		}
		return title, items
	default:
		return title, []MenuItem{{Label: "Current: " + f.Value, Action: ActionEditField, Color: ColorInfo}}
	}
}

func slotTemplate(g Graph, nodeID, slotID string) (*model.SlotTemplate, bool) {
	n, ok := g.Node(nodeID)
	if !ok {
		return nil, false
	}
	t, ok := g.Template(n.TemplateID)
	if !ok {
		return nil, false
	}
	return t.Slot(slotID)
}

// menuRect is the screen area covered by the open menu.
func (e *Engine) menuRect() geometry.Rect {
	m := e.state.Menu
	return geometry.Rect{X: m.X, Y: m.Y, W: e.settings.ContextMenuWidth, H: e.settings.ContextMenuHeight}
}

// openMenu replaces any open menu with one for target anchored at the
// screen point.
func (e *Engine) openMenu(ctx context.Context, screen geometry.Point, target model.Target) {
	title, items := e.menus.Menu(e.graph, target)
	for i := range items {
		if items[i].Bounds == nil {
			items[i].Bounds = &geometry.Rect{
				X: screen.X,
				Y: screen.Y + MenuRowHeight*float64(i+1),
				W: e.settings.ContextMenuWidth,
				H: MenuRowHeight,
			}
		}
	}
	e.state.Menu = &Menu{X: screen.X, Y: screen.Y, Target: target, Title: title, Items: items}
	ctxlog.FromContext(ctx).Debug("Context menu opened.", "target", target.String(), "items", len(items))
	e.events.Emit(ctx, event.ContextMenuOpened{Target: target})
}

// closeMenu closes the open menu, if any.
func (e *Engine) closeMenu(ctx context.Context) {
	if e.state.Menu == nil {
		return
	}
	e.state.Menu = nil
	ctxlog.FromContext(ctx).Debug("Context menu closed.")
	e.events.Emit(ctx, event.ContextMenuClosed{})
}

// SetMenuItemBounds records the screen rectangle the renderer drew item i at.
func (e *Engine) SetMenuItemBounds(i int, r geometry.Rect) bool {
	m := e.state.Menu
	if m == nil || i < 0 || i >= len(m.Items) {
		return false
	}
	m.Items[i].Bounds = &r
	return true
}

// itemAt returns the index of the menu item containing the screen point.
func (e *Engine) itemAt(screen geometry.Point) (int, bool) {
	for i, it := range e.state.Menu.Items {
		if it.Bounds != nil && it.Bounds.Contains(screen) {
			return i, true
		}
	}
	return -1, false
}

// ErrNoCommand is returned for menu items that do not map to a command for
// their target.
var ErrNoCommand = errors.New("menu item has no command for this target")

// runItem performs a menu item's action on the menu target.
func (e *Engine) runItem(ctx context.Context, target model.Target, item MenuItem) error {
	if item.Action == ActionNone {
		return nil
	}
	if item.Action == ActionEditField {
		if target.Kind != model.TargetField {
			return ErrNoCommand
		}
		value := ""
		if n, ok := e.graph.Node(target.NodeID); ok {
			if f, ok := n.Field(target.FieldID); ok {
				value = f.Value
			}
		}
		e.state.FieldEdit = &FieldEdit{NodeID: target.NodeID, FieldID: target.FieldID, Value: value}
		ctxlog.FromContext(ctx).Debug("Field edit started.", "node_id", target.NodeID, "field", target.FieldID)
		return nil
	}

	cmd, err := itemCommand(target, item)
	if err != nil {
		return err
	}
	return e.execute(ctx, cmd)
}

// itemCommand maps a menu item on a target to its graph command.
func itemCommand(target model.Target, item MenuItem) (model.Command, error) {
	switch item.Action {
	case ActionDelete:
		switch target.Kind {
		case model.TargetNode:
			return model.DeleteNode{NodeID: target.NodeID}, nil
		case model.TargetConnection:
			return model.DeleteConnection{Connection: target.Connection}, nil
		}
	case ActionDeleteAllSlotConnections:
		if target.Kind == model.TargetSlot {
			return model.DeleteSlotConnections{NodeID: target.NodeID, SlotID: target.SlotID}, nil
		}
	case ActionSetBooleanField, ActionSetIntegerField:
		if target.Kind == model.TargetField {
			return model.UpdateField{NodeID: target.NodeID, FieldID: target.FieldID, Value: item.Value}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrNoCommand, item.Action, target)
}
