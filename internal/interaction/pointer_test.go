package interaction

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionDrag_CreatesConnection(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 112, 30))
	require.NotNil(t, e.State().ArmedSlot)

	e.PointerMove(testCtx(), 200, 30)
	require.NotNil(t, e.State().ConnectionDrag)
	e.PointerMove(testCtx(), 350, 40)
	assert.Equal(t, 350.0, e.State().ConnectionDrag.X)

	require.NoError(t, e.PointerUp(testCtx(), 350, 40))

	want := model.Connection{HostNodeID: f.a1, HostSlotID: "out", TargetNodeID: f.a2, TargetSlotID: model.IncomingSlotID, CanDelete: true}
	assert.Equal(t, []model.Connection{want}, f.g.NodeConnections(f.a1))
	assert.Equal(t, []string{"connection_started", "connection_completed", "command_executed"}, f.eventTypes())
	if diff := cmp.Diff(event.ConnectionStarted{NodeID: f.a1, SlotID: "out"}, f.events[0]); diff != "" {
		t.Errorf("started event mismatch (-want +got):\n%s", diff)
	}

	s := e.State()
	assert.Nil(t, s.ConnectionDrag)
	assert.Nil(t, s.ArmedSlot)
	assert.False(t, s.DraggingNode)
	assert.False(t, s.PointerDown)
}

func TestConnectionDrag_ReleasedOnEmptyCanvas(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 300, 30))
	e.PointerMove(testCtx(), 450, 200)
	e.PointerMove(testCtx(), 600, 300)
	require.NoError(t, e.PointerUp(testCtx(), 600, 300))

	assert.Empty(t, f.g.Connections())
	assert.Equal(t, 2, f.g.Len())
	assert.Nil(t, e.State().ConnectionDrag)
	assert.Nil(t, e.State().Menu, "a drag never opens a menu")
	assert.Equal(t, []string{"connection_started"}, f.eventTypes())
}

func TestConnectionDrag_RejectedConnectionIsPropagated(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	a3 := f.create(t, "a", 300, 200)
	_, err := f.g.ExecuteCommand(testCtx(), model.CreateConnection{Connection: model.Connection{
		HostNodeID: f.a1, HostSlotID: "out", TargetNodeID: f.a2, TargetSlotID: model.IncomingSlotID,
	}})
	require.NoError(t, err)
	f.events = nil

	require.NoError(t, e.PointerDown(testCtx(), 112, 30))
	e.PointerMove(testCtx(), 350, 230)
	err = e.PointerUp(testCtx(), 350, 230)

	assert.ErrorIs(t, err, graph.ErrCardinality)
	assert.Empty(t, f.g.IncomingConnections(a3))
	assert.Equal(t, []string{"connection_started", "command_failed", "connection_failed"}, f.eventTypes())
	assert.Nil(t, e.State().ConnectionDrag, "drag state is cleared on failure")
	assert.Nil(t, e.State().ArmedSlot)
}

func TestNodeDrag(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 50, 20))
	assert.Equal(t, f.a1, e.State().Selected)

	e.PointerMove(testCtx(), 150, 120)
	require.True(t, e.State().DraggingNode)
	n, _ := f.g.Node(f.a1)
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 100.0, n.Y)

	e.PointerMove(testCtx(), 160, 125)
	assert.Equal(t, 110.0, n.X)
	assert.Equal(t, 105.0, n.Y)

	require.NoError(t, e.PointerUp(testCtx(), 160, 125))
	assert.False(t, e.State().DraggingNode)
	assert.Equal(t, f.a1, e.State().Selected, "selection survives the drop")
	assert.Nil(t, e.State().Menu)

	assert.Equal(t, []event.Event{event.NodeMoved{NodeID: f.a1, X: 110, Y: 105}}, f.events)
	assert.Equal(t, []string{"start:" + f.a1, "step:" + f.a1, "step:" + f.a1, "end:" + f.a1, "persist"}, f.layout.calls)
}

func TestNodeDrag_SnapAndLocks(t *testing.T) {
	t.Run("snaps to grid on drop", func(t *testing.T) {
		f := newFixture(t, func(s *config.Settings) { s.SnapToGrid = true })
		e := f.engine
		require.NoError(t, e.PointerDown(testCtx(), 50, 20))
		e.PointerMove(testCtx(), 83, 47)
		require.NoError(t, e.PointerUp(testCtx(), 83, 47))

		n, _ := f.g.Node(f.a1)
		assert.Equal(t, 40.0, n.X)
		assert.Equal(t, 20.0, n.Y)
	})

	t.Run("can_move false keeps the node in place", func(t *testing.T) {
		f := newFixture(t)
		n, _ := f.g.Node(f.a1)
		n.Capabilities.CanMove = false

		require.NoError(t, f.engine.PointerDown(testCtx(), 50, 20))
		f.engine.PointerMove(testCtx(), 150, 120)
		assert.False(t, f.engine.State().DraggingNode)
		assert.Equal(t, 0.0, n.X)
	})
}

func TestPan(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	e.State().Selected = f.a1

	require.NoError(t, e.PointerDown(testCtx(), 600, 300))
	assert.True(t, e.State().Panning)
	assert.Empty(t, e.State().Selected)

	e.PointerMove(testCtx(), 650, 320)
	require.NoError(t, e.PointerUp(testCtx(), 650, 320))

	v := e.State().View
	assert.Equal(t, 50.0, v.PanX)
	assert.Equal(t, 20.0, v.PanY)
	assert.False(t, e.State().Panning)
	assert.Equal(t, []string{"persist"}, f.layout.calls)
	assert.Nil(t, e.State().Menu)

	t.Run("hit testing follows the view", func(t *testing.T) {
		// a1's out slot is now at screen (162, 50).
		require.NoError(t, e.PointerDown(testCtx(), 162, 50))
		require.NotNil(t, e.State().ArmedSlot)
		assert.Equal(t, f.a1, e.State().ArmedSlot.NodeID)
	})
}

func TestPan_DisabledWhenNotMovable(t *testing.T) {
	f := newFixture(t, func(s *config.Settings) { s.Movable = false })
	require.NoError(t, f.engine.PointerDown(testCtx(), 600, 300))
	f.engine.PointerMove(testCtx(), 650, 320)
	assert.Equal(t, 0.0, f.engine.State().View.PanX)
}

func TestHover(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, err := f.g.ExecuteCommand(testCtx(), model.CreateConnection{Connection: model.Connection{
		HostNodeID: f.a1, HostSlotID: "out", TargetNodeID: f.a2, TargetSlotID: model.IncomingSlotID,
	}})
	require.NoError(t, err)

	e.PointerMove(testCtx(), 110, 28)
	require.NotNil(t, e.State().Hover.Slot)
	assert.Equal(t, SlotRef{NodeID: f.a1, SlotID: "out"}, *e.State().Hover.Slot)

	e.PointerMove(testCtx(), 50, 50)
	assert.Equal(t, Hover{NodeID: f.a1}, e.State().Hover)

	e.PointerMove(testCtx(), 200, 32)
	require.NotNil(t, e.State().Hover.Connection)
	assert.Equal(t, f.a2, e.State().Hover.Connection.TargetNodeID)

	e.PointerMove(testCtx(), 200, 300)
	assert.Equal(t, Hover{}, e.State().Hover)
}

func TestAddNodeMode(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.ErrorIs(t, e.SetMode(ModeAddNode, "ghost"), graph.ErrNotFound)
	require.NoError(t, e.SetMode(ModeAddNode, "f"))

	require.NoError(t, e.PointerDown(testCtx(), 500, 400))
	e.PointerMove(testCtx(), 520, 420)
	require.NoError(t, e.PointerUp(testCtx(), 520, 420))

	nodes := f.g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "f", nodes[2].TemplateID)
	assert.Equal(t, 500.0, nodes[2].X)
	assert.Equal(t, 400.0, nodes[2].Y)
	assert.False(t, e.State().PointerDown)

	require.NoError(t, e.SetMode(ModeDefault, ""))
	assert.Equal(t, ModeDefault, e.State().Mode)
}

func TestPointerDown_LostReleaseIsDiscarded(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 50, 20))
	e.PointerMove(testCtx(), 60, 30)
	require.True(t, e.State().DraggingNode)

	// The release happened outside the canvas; the next press starts on a2's slot.
	require.NoError(t, e.PointerDown(testCtx(), 412, 30))
	e.PointerMove(testCtx(), 500, 100)

	s := e.State()
	assert.False(t, s.DraggingNode)
	assert.Empty(t, s.ArmedNode)
	require.NotNil(t, s.ConnectionDrag)
	assert.Equal(t, ConnectionDrag{FromNode: f.a2, FromSlot: "out", X: 500, Y: 100}, *s.ConnectionDrag)

	n, _ := f.g.Node(f.a1)
	assert.Equal(t, 10.0, n.X, "a1 keeps the position of the abandoned drag")
	assert.Equal(t, 10.0, n.Y)
	assert.Equal(t, []string{"start:" + f.a1, "step:" + f.a1, "end:" + f.a1}, f.layout.calls)
}

func TestPointerDown_ArmsOnlyTheNewTarget(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 412, 30))
	require.NoError(t, e.PointerDown(testCtx(), 50, 20))
	assert.Nil(t, e.State().ArmedSlot)
	assert.Equal(t, f.a1, e.State().ArmedNode)

	e.PointerMove(testCtx(), 150, 120)
	assert.True(t, e.State().DraggingNode)
	assert.Nil(t, e.State().ConnectionDrag)
	assert.Empty(t, f.eventTypes())
}

func TestEscapeDuringConnectionDrag(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	require.NoError(t, e.PointerDown(testCtx(), 112, 30))
	e.PointerMove(testCtx(), 50, 30)
	require.NotNil(t, e.State().ConnectionDrag)

	require.NoError(t, e.KeyDown(testCtx(), KeyEscape))
	assert.Nil(t, e.State().ConnectionDrag)

	require.NoError(t, e.PointerUp(testCtx(), 50, 30))
	assert.Nil(t, e.State().Menu, "the cancelled press does not open a menu")
	assert.Empty(t, f.g.Connections())
	assert.Equal(t, []string{"connection_started"}, f.eventTypes())

	f.click(t, 50, 30)
	assert.NotNil(t, e.State().Menu, "the next click behaves normally")
}
