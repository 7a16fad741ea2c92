package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/envyctl/go-envy/protocol"
)

var (
	// ErrNotConnected is returned when a dispatch is attempted while
	// the client is not synced.
	ErrNotConnected = errors.New("client: not connected")
	// ErrClientStopped is returned by operations on a stopped client
	// and used to fail work outstanding at shutdown.
	ErrClientStopped = errors.New("client: stopped")
	// ErrConnectionLost fails commands and enumerations that were
	// outstanding when the connection dropped. They are never requeued
	// across a reconnect; the device has no cross-session command
	// identifiers.
	ErrConnectionLost = errors.New("client: connection lost")
	// ErrSyncTimeout is returned by WaitSynced when the greeting does
	// not arrive in time. The connection stays open.
	ErrSyncTimeout = errors.New("client: sync timeout")
	// ErrAckTimeout is returned when a device acknowledgement does not
	// arrive within the command timeout.
	ErrAckTimeout = errors.New("client: acknowledgement timeout")
	// ErrEnumerationInProgress is returned when an enumeration of the
	// same kind is already collecting.
	ErrEnumerationInProgress = errors.New("client: enumeration already in progress")
)

// CommandRejectedError reports a device ERROR acknowledgement for one
// dispatched command.
type CommandRejectedError struct {
	Command string
	Reason  string
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("client: command %q rejected: %s", e.Command, e.Reason)
}

// EnumerationTimeoutError reports an enumeration whose end marker did
// not arrive before the caller's timeout.
type EnumerationTimeoutError struct {
	Command   string
	Kind      protocol.Kind
	Timeout   time.Duration
	Collected int
}

func (e *EnumerationTimeoutError) Error() string {
	return fmt.Sprintf("client: enumeration %q timed out after %s (kind=%s, collected=%d)",
		e.Command, e.Timeout, e.Kind, e.Collected)
}
