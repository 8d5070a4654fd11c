package interaction

import (
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/model"
)

// Mode switches how pointer input is interpreted.
type Mode int

const (
	ModeDefault Mode = iota
	ModeAddNode
)

func (m Mode) String() string {
	if m == ModeAddNode {
		return "add_node"
	}
	return "default"
}

// SlotRef names one slot of one node.
type SlotRef struct {
	NodeID string
	SlotID string
}

// ConnectionDrag is an in-flight connection drag. X and Y follow the pointer
// in graph space.
type ConnectionDrag struct {
	FromNode string
	FromSlot string
	X, Y     float64
}

// Menu is an open context menu. X and Y are the screen anchor.
type Menu struct {
	X, Y   float64
	Target model.Target
	Title  string
	Items  []MenuItem
}

// Hover holds the element under the pointer. At most one field is set.
type Hover struct {
	NodeID     string
	Slot       *SlotRef
	Connection *model.Connection
}

// FieldEdit is a pending free-form field edit started from a context menu.
type FieldEdit struct {
	NodeID  string
	FieldID string
	// Value is the field's value when the edit started.
	Value string
}

// State is the ephemeral interaction state of one canvas session.
type State struct {
	PointerDown bool
	// ArmedNode and ArmedSlot record what the current press started on until
	// it turns into a drag or ends.
	ArmedNode string
	ArmedSlot *SlotRef
	Selected  string

	DraggingNode bool
	// DragOffset is the pointer position minus the node position at press
	// time, in graph space.
	DragOffset geometry.Point

	ConnectionDrag *ConnectionDrag
	Menu           *Menu
	FieldEdit      *FieldEdit
	Hover          Hover

	Mode          Mode
	AddTemplateID string

	View    geometry.ViewTransform
	Panning bool

	// LastPointer is the last screen position seen.
	LastPointer geometry.Point

	panMoved      bool
	pressConsumed bool
}

// NewState returns an idle state with the identity view.
func NewState() *State {
	return &State{View: geometry.Identity()}
}

// clearArmed drops the press markers.
func (s *State) clearArmed() {
	s.ArmedNode = ""
	s.ArmedSlot = nil
}
