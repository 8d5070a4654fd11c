// Package relay forwards graph events to a socket.io server so remote
// observers can follow a canvas as it changes.
package relay

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/event"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// EventName is the socket.io event every graph event is emitted as.
const EventName = "graph_event"

// DefaultConnectTimeout bounds Dial when Config.ConnectTimeout is zero.
const DefaultConnectTimeout = 15 * time.Second

// Config describes the relay target.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Relay is a connected socket.io client.
type Relay struct {
	io     *socket.Socket
	logger *slog.Logger
}

// Dial connects to the socket.io server and waits for the namespace to
// accept the connection.
func Dial(ctx context.Context, cfg Config) (*Relay, error) {
	logger := ctxlog.FromContext(ctx).With("component", "relay", "url", cfg.URL, "namespace", cfg.Namespace)
	logger.Info("Connecting event relay...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relay URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("relay URL %q must be absolute", cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "/"
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Event relay connected", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	return &Relay{io: io, logger: logger}, nil
}

// Listener returns a broadcaster listener that emits every event.
func (r *Relay) Listener() event.Listener {
	return func(ctx context.Context, e event.Event) {
		if err := r.io.Emit(EventName, Encode(e)); err != nil {
			ctxlog.FromContext(ctx).Warn("Event relay emit failed.", "event", e.Type(), "error", err)
		}
	}
}

// Close disconnects from the server.
func (r *Relay) Close() error {
	r.logger.Info("Disconnecting event relay", "sid", r.io.Id())
	r.io.Disconnect()
	return nil
}

// Encode builds the wire payload of an event: its fields plus "type".
func Encode(e event.Event) map[string]any {
	payload := event.Fields(e)
	payload["type"] = e.Type()
	return payload
}
