package client

import "fmt"

// ConnState is the client lifecycle state.
//
// Transitions:
//
//	Idle → Connecting → Handshaking → Synced ⇄ Reconnecting → Stopped
//
// Handshaking becomes Synced when the greeting notification is
// observed. Any transport failure or liveness miss moves Handshaking or
// Synced to Reconnecting. Stopped is terminal.
type ConnState int

const (
	// StateIdle is the initial state before Start.
	StateIdle ConnState = iota
	// StateConnecting means the initial connect attempt is in flight.
	StateConnecting
	// StateHandshaking means the transport is up and the client is
	// waiting for the greeting.
	StateHandshaking
	// StateSynced means the greeting was observed; commands may be
	// dispatched.
	StateSynced
	// StateReconnecting means the connection was lost and backoff
	// retries are running.
	StateReconnecting
	// StateStopped is the terminal state after Stop.
	StateStopped
)

// String returns the state name.
func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateConnecting:
		return "Connecting"
	case StateHandshaking:
		return "Handshaking"
	case StateSynced:
		return "Synced"
	case StateReconnecting:
		return "Reconnecting"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}
