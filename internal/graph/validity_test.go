package graph

import (
	"testing"

	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MinConnectionsCheckedLazily(t *testing.T) {
	needy := templateA()
	needy.Slots[0].MinConnections = 1
	g, _ := newTestGraph(t, needy)

	a1 := mustCreate(t, g, "a", 0, 0)
	a2 := mustCreate(t, g, "a", 0, 0)

	violations := g.Validate()
	require.Len(t, violations, 2, "both out slots start below their minimum")
	assert.Equal(t, Violation{NodeID: a1, SlotID: "out", Count: 0, Min: 1, Max: model.Limit(1)}, violations[0])
	assert.False(t, g.IsGraphValid())
	assert.Contains(t, violations[0].String(), "want [1, 1]")

	mustConnect(t, g, a1, "out", a2)
	mustConnect(t, g, a2, "out", a1)
	assert.True(t, g.IsGraphValid())

	_, err := g.ExecuteCommand(testCtx(), model.DeleteSlotConnections{NodeID: a1, SlotID: "out"})
	require.NoError(t, err, "disconnecting below the minimum is allowed")
	assert.False(t, g.IsGraphValid())
}

func TestValidate_DetectsOverfullSlot(t *testing.T) {
	g, _ := newTestGraph(t, templateA())
	a1 := mustCreate(t, g, "a", 0, 0)
	a2 := mustCreate(t, g, "a", 0, 0)
	a3 := mustCreate(t, g, "a", 0, 0)

	// Only reachable by editing instance data directly.
	n, _ := g.Node(a1)
	n.Slots[0].Connections = []model.Connection{
		{HostNodeID: a1, HostSlotID: "out", TargetNodeID: a2, TargetSlotID: model.IncomingSlotID},
		{HostNodeID: a1, HostSlotID: "out", TargetNodeID: a3, TargetSlotID: model.IncomingSlotID},
	}

	violations := g.Validate()
	require.Len(t, violations, 1)
	assert.Equal(t, 2, violations[0].Count)
}
