// Package envy is a Go client library for the madVR Envy video
// processor's IP-control protocol: a line-oriented, notification-driven
// TCP protocol on port 44077.
//
// # Architecture
//
// The library is organized into layers:
//
//   - client: stateful connection lifecycle, command dispatch,
//     acknowledgement correlation, enumeration collectors, observers
//   - protocol: line parsing into typed messages and command encoding
//   - state: the pure reducer folding messages into DeviceState
//   - commands: typed command constructors
//   - transport: the raw TCP line transport
//   - adapter, bridge: integration-facing snapshots, deltas and events
//
// # Basic usage
//
//	c, err := envy.Connect(ctx, "192.168.1.50")
//	if err != nil {
//	    return err
//	}
//	defer c.Stop()
//
//	if err := c.WaitSynced(ctx, 5*time.Second); err != nil {
//	    return err
//	}
//	info, err := c.GetIncomingSignalInfo(ctx)
package envy

import (
	"context"
	"log/slog"
	"time"

	"github.com/envyctl/go-envy/client"
)

// Option adjusts the client configuration built by Connect.
type Option func(*client.Config)

// WithPort overrides the default IP-control port.
func WithPort(port int) Option {
	return func(cfg *client.Config) { cfg.Port = port }
}

// WithLogger routes client logs to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *client.Config) { cfg.Logger = log }
}

// WithCommandTimeout bounds how long dispatches wait for their
// acknowledgement.
func WithCommandTimeout(d time.Duration) Option {
	return func(cfg *client.Config) { cfg.CommandTimeout = d }
}

// WithoutAutoReconnect disables automatic reconnection after a
// connection loss.
func WithoutAutoReconnect() Option {
	return func(cfg *client.Config) { cfg.DisableAutoReconnect = true }
}

// Connect creates a client for the device at host and starts it. The
// returned client is connected but not necessarily synced yet; call
// WaitSynced before dispatching commands.
func Connect(ctx context.Context, host string, opts ...Option) (*client.Client, error) {
	cfg := client.Config{Host: host}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := client.New(cfg)
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
