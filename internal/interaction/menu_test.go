package interaction

import (
	"testing"

	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/geometry"
	"github.com/specialistvlad/nodecanvas/internal/graph"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(items []MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestClickOpensNodeMenuAndRunsItem(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	f.click(t, 50, 58)
	m := e.State().Menu
	require.NotNil(t, m)
	assert.Equal(t, model.NodeTarget(f.a1), m.Target)
	assert.Equal(t, "Node: A", m.Title)
	assert.Equal(t, []string{"Delete Node"}, labels(m.Items))
	assert.Equal(t, ColorDanger, m.Items[0].Color)
	assert.Equal(t, geometry.Rect{X: 50, Y: 78, W: 400, H: MenuRowHeight}, *m.Items[0].Bounds)
	assert.Equal(t, []string{"context_menu_opened"}, f.eventTypes())

	t.Run("press inside the menu but off every item is swallowed", func(t *testing.T) {
		f.events = nil
		f.click(t, 60, 110)
		assert.NotNil(t, e.State().Menu)
		assert.Empty(t, f.events)
	})

	t.Run("picking an item runs its command and closes the menu", func(t *testing.T) {
		f.events = nil
		f.click(t, 60, 85)
		assert.Nil(t, e.State().Menu)
		_, ok := f.g.Node(f.a1)
		assert.False(t, ok)
		assert.Equal(t, []string{"command_executed", "context_menu_closed"}, f.eventTypes())
	})
}

func TestClickOnEmptyCanvasClosesMenu(t *testing.T) {
	f := newFixture(t)
	f.click(t, 50, 58)
	require.NotNil(t, f.engine.State().Menu)

	f.events = nil
	f.click(t, 700, 500)
	assert.Nil(t, f.engine.State().Menu)
	assert.Equal(t, []string{"context_menu_closed"}, f.eventTypes())
}

func TestMenuTargets(t *testing.T) {
	f := newFixture(t)
	_, err := f.g.ExecuteCommand(testCtx(), model.CreateConnection{Connection: model.Connection{
		HostNodeID: f.a1, HostSlotID: "out", TargetNodeID: f.a2, TargetSlotID: model.IncomingSlotID, CanDelete: true,
	}})
	require.NoError(t, err)

	t.Run("slot", func(t *testing.T) {
		f.click(t, 412, 30)
		m := f.engine.State().Menu
		require.NotNil(t, m)
		assert.Equal(t, model.SlotTarget(f.a2, "out"), m.Target)
		assert.Equal(t, "Slot: Out", m.Title)
		assert.Equal(t, []string{"Delete All Connections"}, labels(m.Items))
	})

	t.Run("connection", func(t *testing.T) {
		f.click(t, 200, 32)
		m := f.engine.State().Menu
		require.NotNil(t, m)
		assert.Equal(t, model.TargetConnection, m.Target.Kind)
		assert.Equal(t, f.a1, m.Target.Connection.HostNodeID)
		assert.Equal(t, "Connection", m.Title)

		require.True(t, f.engine.SetMenuItemBounds(0, geometry.Rect{X: 250, Y: 40, W: 50, H: 10}))
		assert.False(t, f.engine.SetMenuItemBounds(5, geometry.Rect{}))
		f.click(t, 260, 45)
		assert.Empty(t, f.g.Connections())
	})
}

func TestFieldMenu(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	id := f.create(t, "f", 0, 200)
	// Rows are centred: on 207.5-222.5, count 222.5-237.5, label 237.5-252.5.

	t.Run("boolean", func(t *testing.T) {
		f.click(t, 50, 215)
		m := e.State().Menu
		require.NotNil(t, m)
		assert.Equal(t, model.FieldTarget(id, "on"), m.Target)
		assert.Equal(t, "Field: On", m.Title)
		assert.Equal(t, []string{"Set True", "Set False"}, labels(m.Items))

		// Item 0 lies at y 235-255, inside the node, so move it out first.
		e.SetMenuItemBounds(0, geometry.Rect{X: 120, Y: 220, W: 100, H: 20})
		f.click(t, 130, 225)
		n, _ := f.g.Node(id)
		on, _ := n.Field("on")
		assert.Equal(t, "true", on.Value)
	})

	t.Run("integer increment", func(t *testing.T) {
		f.click(t, 50, 230)
		m := e.State().Menu
		require.NotNil(t, m)
		assert.Equal(t, []string{"Current: 0", "Increment (+1)", "Decrement (-1)"}, labels(m.Items))
		assert.Equal(t, "1", m.Items[1].Value)
		assert.Equal(t, "-1", m.Items[2].Value)

		f.click(t, 60, 275)
		n, _ := f.g.Node(id)
		count, _ := n.Field("count")
		assert.Equal(t, "1", count.Value)
	})

	t.Run("integer edit flow", func(t *testing.T) {
		f.click(t, 50, 230)
		f.click(t, 60, 265)
		require.NotNil(t, e.State().FieldEdit)
		assert.Equal(t, FieldEdit{NodeID: id, FieldID: "count", Value: "1"}, *e.State().FieldEdit)

		err := e.CommitFieldEdit(testCtx(), "abc")
		assert.ErrorIs(t, err, graph.ErrInvalidFieldValue)
		assert.NotNil(t, e.State().FieldEdit, "a rejected edit stays pending")

		require.NoError(t, e.CommitFieldEdit(testCtx(), "42"))
		assert.Nil(t, e.State().FieldEdit)
		n, _ := f.g.Node(id)
		count, _ := n.Field("count")
		assert.Equal(t, "42", count.Value)

		assert.ErrorIs(t, e.CommitFieldEdit(testCtx(), "1"), ErrNoFieldEdit)
	})

	t.Run("string", func(t *testing.T) {
		f.click(t, 50, 245)
		m := e.State().Menu
		require.NotNil(t, m)
		assert.Equal(t, "Field: Label", m.Title)
		assert.Equal(t, []string{"Current: hi"}, labels(m.Items))
	})
}

func TestFieldMenu_LockedField(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	id := f.create(t, "f", 0, 200)
	n, _ := f.g.Node(id)
	count, _ := n.Field("count")
	count.CanModify = false

	f.click(t, 50, 230)
	m := e.State().Menu
	require.NotNil(t, m)
	assert.Equal(t, "Field: Count", m.Title)
	require.Len(t, m.Items, 1)
	assert.Equal(t, "Current: 0", m.Items[0].Label)
	assert.Equal(t, ActionNone, m.Items[0].Action)

	f.click(t, 60, 265)
	assert.Nil(t, e.State().Menu)
	assert.Nil(t, e.State().FieldEdit)
	assert.Equal(t, "0", count.Value)

	n.Capabilities.CanModifyFields = false
	f.click(t, 50, 215)
	require.NotNil(t, e.State().Menu)
	assert.Equal(t, []string{"Current: false"}, labels(e.State().Menu.Items))
}

func TestItemCommand(t *testing.T) {
	conn := model.Connection{HostNodeID: "a", HostSlotID: "out", TargetNodeID: "b", TargetSlotID: model.IncomingSlotID}
	testCases := []struct {
		name   string
		target model.Target
		item   MenuItem
		want   model.Command
	}{
		{"delete node", model.NodeTarget("a"), MenuItem{Action: ActionDelete}, model.DeleteNode{NodeID: "a"}},
		{"delete connection", model.ConnectionTarget(conn), MenuItem{Action: ActionDelete}, model.DeleteConnection{Connection: conn}},
		{"delete slot connections", model.SlotTarget("a", "out"), MenuItem{Action: ActionDeleteAllSlotConnections}, model.DeleteSlotConnections{NodeID: "a", SlotID: "out"}},
		{"set boolean", model.FieldTarget("a", "on"), MenuItem{Action: ActionSetBooleanField, Value: "true"}, model.UpdateField{NodeID: "a", FieldID: "on", Value: "true"}},
		{"set integer", model.FieldTarget("a", "n"), MenuItem{Action: ActionSetIntegerField, Value: "3"}, model.UpdateField{NodeID: "a", FieldID: "n", Value: "3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := itemCommand(tc.target, tc.item)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := itemCommand(model.SlotTarget("a", "out"), MenuItem{Action: ActionDelete})
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestReadOnlyCanvas(t *testing.T) {
	f := newFixture(t, func(s *config.Settings) { s.Mutable = false })
	e := f.engine

	f.click(t, 50, 58)
	require.NotNil(t, e.State().Menu)
	err := e.PointerDown(testCtx(), 60, 85)
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Nil(t, e.State().Menu)
	_, ok := f.g.Node(f.a1)
	assert.True(t, ok)

	require.NoError(t, e.PointerUp(testCtx(), 60, 85))
	require.NoError(t, e.PointerDown(testCtx(), 112, 30))
	e.PointerMove(testCtx(), 350, 40)
	assert.Nil(t, e.State().ConnectionDrag, "no connection drag on a read-only canvas")
}
