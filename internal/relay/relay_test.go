package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/specialistvlad/nodecanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cmd := model.DeleteNode{NodeID: "n-1"}
	testCases := []struct {
		name string
		in   event.Event
		want map[string]any
	}{
		{
			name: "node moved",
			in:   event.NodeMoved{NodeID: "n-1", X: 20, Y: 40},
			want: map[string]any{"type": "node_moved", "node": "n-1", "x": 20.0, "y": 40.0},
		},
		{
			name: "menu closed",
			in:   event.ContextMenuClosed{},
			want: map[string]any{"type": "context_menu_closed"},
		},
		{
			name: "command failed",
			in:   event.CommandFailed{Command: cmd, Reason: errors.New("locked")},
			want: map[string]any{
				"type":    "command_failed",
				"command": cmd.Kind(),
				"detail":  cmd.String(),
				"reason":  "locked",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Encode(tc.in)); diff != "" {
				t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDial_RejectsRelativeURL(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	_, err := Dial(ctx, Config{URL: "/only/a/path", ConnectTimeout: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be absolute")
}
