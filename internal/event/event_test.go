package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_DeliversInSubscriptionOrder(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	b := NewBroadcaster()

	var got []string
	b.Subscribe(func(_ context.Context, e Event) { got = append(got, "first:"+e.Type()) })
	b.Subscribe(func(_ context.Context, e Event) { got = append(got, "second:"+e.Type()) })

	b.Emit(ctx, ContextMenuClosed{})
	b.Emit(ctx, NodeMoved{NodeID: "n1", X: 1, Y: 2})

	want := []string{
		"first:context_menu_closed",
		"second:context_menu_closed",
		"first:node_moved",
		"second:node_moved",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, b.Len())
}

func TestBroadcaster_DropsReentrantEmit(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	b := NewBroadcaster()

	var count int
	b.Subscribe(func(ctx context.Context, e Event) {
		count++
		b.Emit(ctx, ContextMenuClosed{})
	})

	b.Emit(ctx, ContextMenuClosed{})
	assert.Equal(t, 1, count)

	// The broadcaster recovers after the outer emission finished.
	b.Emit(ctx, ContextMenuClosed{})
	assert.Equal(t, 2, count)
}

func TestFields(t *testing.T) {
	conn := model.Connection{HostNodeID: "a", HostSlotID: "out", TargetNodeID: "b", TargetSlotID: "incoming"}

	testCases := []struct {
		name  string
		event Event
		want  map[string]any
	}{
		{
			name:  "connection completed",
			event: ConnectionCompleted{Connection: conn},
			want: map[string]any{
				"host_node": "a", "host_slot": "out", "target_node": "b", "target_slot": "incoming", "can_delete": false,
			},
		},
		{
			name:  "command failed",
			event: CommandFailed{Command: model.DeleteNode{NodeID: "a"}, Reason: errors.New("locked")},
			want:  map[string]any{"command": "delete_node", "detail": "DeleteNode(a)", "reason": "locked"},
		},
		{
			name:  "menu opened",
			event: ContextMenuOpened{Target: model.NodeTarget("a")},
			want:  map[string]any{"target": "node a", "kind": "node"},
		},
		{
			name:  "menu closed",
			event: ContextMenuClosed{},
			want:  map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Fields(tc.event))
		})
	}
}
