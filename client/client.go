// Package client implements the stateful Envy IP-control client.
//
// The client orchestrates the transport, the protocol codec, and the
// state reducer: it manages the connection lifecycle (connect,
// heartbeat supervision, reconnect with exponential backoff and
// jitter), dispatches commands, correlates acknowledgements, runs
// enumeration collectors, and publishes every reduced message to
// registered observers.
//
// # Concurrency model
//
// A single dedicated goroutine consumes the transport's line stream and
// is the sole mutator of the canonical device state, the
// pending-command table, and enumeration sessions. Caller-facing
// operations (Send, the Enum* collectors, WaitSynced) block on
// single-resolution completion channels that the consumer goroutine
// resolves; callers may issue them concurrently from any goroutine.
// Outbound writes are serialized independently of the read path.
//
// # Acknowledgement correlation
//
// The wire protocol carries no request identifiers, so correlation is
// by command kind, FIFO: a dispatched command registers a pending entry
// bucketed by its leading keyword; a generic OK/ERROR resolves the
// oldest pending entry, and a kind-specific reply notification (such as
// MacAddress for GetMacAddress) resolves the oldest pending entry of
// the matching kind. Concurrent same-kind commands therefore resolve in
// submission order. A future protocol revision that adds request IDs
// would allow exact correlation here.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/envyctl/go-envy/commands"
	"github.com/envyctl/go-envy/protocol"
	"github.com/envyctl/go-envy/state"
	"github.com/envyctl/go-envy/transport"
)

// Default tuning values, matching the device's observed behavior.
const (
	DefaultConnectTimeout          = 3 * time.Second
	DefaultCommandTimeout          = 2 * time.Second
	DefaultReadTimeout             = 5 * time.Second
	DefaultHeartbeatInterval       = 10 * time.Second
	DefaultLivenessTimeout         = 30 * time.Second
	DefaultReconnectInitialBackoff = 1 * time.Second
	DefaultReconnectMaxBackoff     = 30 * time.Second
	DefaultReconnectJitter         = 0.2
)

// Transport is the connection surface the client drives. *transport.Conn
// implements it; tests substitute scripted fakes.
type Transport interface {
	ReadLine(timeout time.Duration) (string, error)
	WriteLine(line string, timeout time.Duration) error
	Close() error
}

// Dialer opens one transport connection. The context bounds the
// attempt.
type Dialer func(ctx context.Context) (Transport, error)

// Config tunes a Client. The zero value plus Host is usable; missing
// fields take the defaults above.
type Config struct {
	Host string
	Port int

	ConnectTimeout time.Duration
	CommandTimeout time.Duration
	// ReadTimeout is the per-read poll interval of the consumer
	// goroutine; it bounds how quickly stop and liveness checks run,
	// not how long the device may stay silent.
	ReadTimeout time.Duration

	// HeartbeatInterval is how often the client sends Heartbeat while
	// synced. Zero disables the heartbeat sender.
	HeartbeatInterval time.Duration
	// LivenessTimeout is the maximum silence on the inbound stream
	// before the connection is considered dead. Zero disables the
	// check.
	LivenessTimeout time.Duration

	ReconnectInitialBackoff time.Duration
	ReconnectMaxBackoff     time.Duration
	// ReconnectJitter is the random fraction of the capped delay added
	// to each backoff wait.
	ReconnectJitter float64
	// DisableAutoReconnect turns off automatic reconnection; the read
	// loop then exits on the first transport failure.
	DisableAutoReconnect bool

	MaxLineLength int

	// Logger receives structured debug/warn logs. Defaults to a
	// text handler on stderr at info level.
	Logger *slog.Logger

	// Dialer overrides the TCP dialer; used by tests.
	Dialer Dialer
}

func (c Config) withDefaults() Config {
	if c.Port <= 0 {
		c.Port = transport.DefaultPort
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.LivenessTimeout == 0 {
		c.LivenessTimeout = DefaultLivenessTimeout
	}
	if c.ReconnectInitialBackoff <= 0 {
		c.ReconnectInitialBackoff = DefaultReconnectInitialBackoff
	}
	if c.ReconnectMaxBackoff <= 0 {
		c.ReconnectMaxBackoff = DefaultReconnectMaxBackoff
	}
	if c.ReconnectJitter <= 0 {
		c.ReconnectJitter = DefaultReconnectJitter
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return c
}

// EventKind classifies observer events.
type EventKind int

const (
	// EventMessage delivers one reduced protocol message.
	EventMessage EventKind = iota
	// EventConnected signals a (re)established transport; the greeting
	// has not necessarily arrived yet.
	EventConnected
	// EventDisconnected signals a lost or closed transport. The
	// snapshot it carries is reset: volatile fields are stale.
	EventDisconnected
)

// Event is one observer delivery. Events arrive in reduction order,
// exactly once per subscription.
type Event struct {
	Kind    EventKind
	Message protocol.Message // set for EventMessage
	State   state.DeviceState
}

// Observer receives client events. Observers are called synchronously
// from the consumer goroutine and must not block.
type Observer func(Event)

type observerEntry struct {
	id uuid.UUID
	fn Observer
}

type ackResult struct {
	msg protocol.Message
	err error
}

// pendingCommand is one command awaiting acknowledgement. It is
// created on dispatch and resolved exactly once.
type pendingCommand struct {
	kind      string
	line      string
	submitted time.Time
	ch        chan ackResult
	resolved  bool
}

// Client is a stateful Envy IP-control client. Create with New, start
// with Start, and always Stop when done.
type Client struct {
	cfg  Config
	log  *slog.Logger
	dial Dialer
	rand func() float64

	sendMu sync.Mutex // serializes register-pending + write pairs

	mu          sync.Mutex
	connState   ConnState
	transport   Transport
	device      state.DeviceState
	pending     []*pendingCommand
	sessions    map[protocol.Kind]*enumSession
	observers   []observerEntry
	syncedCh    chan struct{}
	lastInbound time.Time
	stopped     bool

	stopCh   chan struct{}
	loopDone chan struct{}
	hbDone   chan struct{}
}

// New creates a client for the given configuration. No connection is
// made until Start.
func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:      cfg,
		log:      cfg.Logger,
		rand:     rand.Float64,
		sessions: make(map[protocol.Kind]*enumSession),
		stopCh:   make(chan struct{}),
	}
	c.dial = cfg.Dialer
	if c.dial == nil {
		c.dial = func(ctx context.Context) (Transport, error) {
			return transport.Dial(ctx, cfg.Host, cfg.Port, cfg.MaxLineLength)
		}
	}
	return c
}

// ConnState returns the current lifecycle state.
func (c *Client) ConnState() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connState
}

// State returns a snapshot of the canonical device state. The snapshot
// is stable: later reductions never mutate it.
func (c *Client) State() state.DeviceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Subscribe registers an observer and returns its subscription id.
func (c *Client) Subscribe(fn Observer) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := uuid.New()
	c.observers = append(c.observers, observerEntry{id: id, fn: fn})
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (c *Client) Unsubscribe(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = slices.DeleteFunc(c.observers, func(e observerEntry) bool {
		return e.id == id
	})
}

// Start connects to the device and launches the consumer and heartbeat
// goroutines. It fails only if the initial connect attempt fails;
// later failures are handled by reconnection. Start on a started
// client is a no-op; Start after Stop returns ErrClientStopped.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrClientStopped
	}
	if c.connState != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.connState = StateConnecting
	c.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	t, err := c.dial(dialCtx)
	cancel()
	if err != nil {
		c.mu.Lock()
		if !c.stopped {
			c.connState = StateIdle
		}
		c.mu.Unlock()
		return fmt.Errorf("client: connect: %w", err)
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		t.Close()
		return ErrClientStopped
	}
	c.transport = t
	c.connState = StateHandshaking
	c.device = state.DeviceState{}
	c.syncedCh = make(chan struct{})
	c.lastInbound = time.Now()
	c.loopDone = make(chan struct{})
	c.hbDone = make(chan struct{})
	c.mu.Unlock()

	c.emit(Event{Kind: EventConnected})
	c.log.Info("connected", "host", c.cfg.Host, "port", c.cfg.Port)

	go c.readLoop()
	go c.heartbeatLoop()
	return nil
}

// Stop shuts the client down: it cancels the consumer goroutine, fails
// all pending commands and enumerations with ErrClientStopped, and
// closes the transport. Stop is idempotent and Stopped is terminal.
func (c *Client) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	c.connState = StateStopped
	close(c.stopCh)
	t := c.transport
	c.transport = nil
	c.failPendingLocked(ErrClientStopped)
	c.failSessionsLocked(ErrClientStopped)
	loopDone, hbDone := c.loopDone, c.hbDone
	c.mu.Unlock()

	if t != nil {
		t.Close()
	}
	if loopDone != nil {
		<-loopDone
	}
	if hbDone != nil {
		<-hbDone
	}
	c.log.Info("stopped")
	return nil
}

// WaitSynced blocks until the greeting notification has been observed,
// the timeout elapses (ErrSyncTimeout; the connection stays open), or
// the context is cancelled. A non-positive timeout waits until context
// cancellation. The wait spans reconnects: a waiter parked across a
// connection drop resumes on the replacement connection's greeting.
func (c *Client) WaitSynced(ctx context.Context, timeout time.Duration) error {
	var timerCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timerCh = timer.C
	}

	for {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return ErrClientStopped
		}
		if c.connState == StateSynced {
			c.mu.Unlock()
			return nil
		}
		ch := c.syncedCh
		c.mu.Unlock()
		if ch == nil {
			return ErrNotConnected
		}

		// The channel also closes when the connection drops, so a
		// wakeup only means "re-check"; the loop picks up the
		// replacement channel after a reconnect.
		select {
		case <-ch:
		case <-timerCh:
			return ErrSyncTimeout
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			return ErrClientStopped
		}
	}
}

// Send dispatches one command. With waitForAck it registers a pending
// entry and blocks until the matching acknowledgement arrives (an
// ERROR ack yields *CommandRejectedError), the command timeout elapses
// (ErrAckTimeout), or the context is cancelled; without it the command
// is fire-and-forget. Dispatch is at-most-once: commands are never
// silently retried. Send fails with ErrNotConnected unless the client
// is Synced.
func (c *Client) Send(ctx context.Context, cmd commands.Command, waitForAck bool) (protocol.Message, error) {
	c.sendMu.Lock()

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.sendMu.Unlock()
		return nil, ErrClientStopped
	}
	if c.connState != StateSynced || c.transport == nil {
		c.mu.Unlock()
		c.sendMu.Unlock()
		return nil, ErrNotConnected
	}
	t := c.transport
	var p *pendingCommand
	if waitForAck {
		p = &pendingCommand{
			kind:      cmd.Name,
			line:      cmd.Line,
			submitted: time.Now(),
			ch:        make(chan ackResult, 1),
		}
		c.pending = append(c.pending, p)
	}
	c.mu.Unlock()

	err := t.WriteLine(cmd.Line, c.cfg.CommandTimeout)
	c.sendMu.Unlock()
	if err != nil {
		if p != nil {
			c.cancelPending(p)
		}
		return nil, fmt.Errorf("client: send %s: %w", cmd.Name, err)
	}
	if p == nil {
		return nil, nil
	}

	timer := time.NewTimer(c.cfg.CommandTimeout)
	defer timer.Stop()
	select {
	case res := <-p.ch:
		return res.msg, res.err
	case <-timer.C:
		c.cancelPending(p)
		return nil, fmt.Errorf("%w: %s", ErrAckTimeout, cmd.Name)
	case <-ctx.Done():
		c.cancelPending(p)
		return nil, ctx.Err()
	}
}

// SendRaw dispatches one raw command line. The leading keyword is used
// as the correlation kind.
func (c *Client) SendRaw(ctx context.Context, line string, waitForAck bool) (protocol.Message, error) {
	name, _, _ := strings.Cut(line, " ")
	return c.Send(ctx, commands.Command{Name: name, Line: line}, waitForAck)
}

// readLoop is the consumer goroutine: the sole mutator of the device
// state, the pending table, and enumeration sessions.
func (c *Client) readLoop() {
	defer close(c.loopDone)

	for {
		if c.isStopped() {
			return
		}
		c.mu.Lock()
		t := c.transport
		c.mu.Unlock()
		if t == nil {
			return
		}

		line, err := t.ReadLine(c.cfg.ReadTimeout)
		if err != nil {
			if isTimeout(err) && !c.livenessExpired() {
				continue
			}
			if c.isStopped() {
				return
			}
			if isTimeout(err) {
				c.log.Warn("liveness window expired, resetting connection",
					"timeout", c.cfg.LivenessTimeout)
			} else {
				c.log.Warn("transport failure", "err", err)
			}
			var framing *transport.FramingError
			if errors.As(err, &framing) {
				c.log.Warn("protocol framing violation", "limit", framing.Limit)
			}
			if !c.reconnect() {
				return
			}
			continue
		}

		c.handleLine(line)
	}
}

// handleLine parses one inbound line, folds it into the canonical
// state, resolves matching waiters, and broadcasts to observers.
func (c *Client) handleLine(line string) {
	msg := protocol.Parse(line)

	c.mu.Lock()
	c.lastInbound = time.Now()
	c.device = state.Apply(c.device, msg)
	snapshot := c.device

	if c.connState == StateHandshaking && c.device.Synced() {
		c.connState = StateSynced
		close(c.syncedCh)
		c.log.Info("synced", "version", c.device.Version)
	}

	c.resolveAckLocked(msg)
	c.routeSessionLocked(msg)
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	if msg.Kind() == protocol.KindUnknown {
		c.log.Debug("unrecognized protocol line", "line", line)
	}
	for _, o := range obs {
		o.fn(Event{Kind: EventMessage, Message: msg, State: snapshot})
	}
}

// replyCommands maps kind-specific reply notifications to the command
// keyword they acknowledge.
var replyCommands = map[protocol.Kind]string{
	protocol.KindMacAddress:         "GetMacAddress",
	protocol.KindActiveProfile:      "GetActiveProfile",
	protocol.KindIncomingSignalInfo: "GetIncomingSignalInfo",
	protocol.KindOutgoingSignalInfo: "GetOutgoingSignalInfo",
	protocol.KindAspectRatio:        "GetAspectRatio",
	protocol.KindMaskingRatio:       "GetMaskingRatio",
	protocol.KindTemperatures:       "GetTemperatures",
}

func (c *Client) resolveAckLocked(msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.OKMessage:
		if p := c.popPendingLocked(""); p != nil {
			p.ch <- ackResult{msg: m}
		}
	case protocol.ErrorMessage:
		if p := c.popPendingLocked(""); p != nil {
			p.ch <- ackResult{err: &CommandRejectedError{Command: p.line, Reason: m.Reason}}
		}
	default:
		kind, ok := replyCommands[msg.Kind()]
		if !ok {
			return
		}
		if p := c.popPendingLocked(kind); p != nil {
			p.ch <- ackResult{msg: msg}
		}
	}
}

// popPendingLocked removes and returns the oldest pending command,
// either of the given kind or of any kind when kind is empty.
func (c *Client) popPendingLocked(kind string) *pendingCommand {
	for i, p := range c.pending {
		if kind == "" || p.kind == kind {
			p.resolved = true
			c.pending = slices.Delete(c.pending, i, i+1)
			return p
		}
	}
	return nil
}

// cancelPending withdraws a waiter after timeout or cancellation. A
// late matching notification then resolves the next pending entry
// instead; the withdrawn entry is no longer tracked.
func (c *Client) cancelPending(p *pendingCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.resolved {
		return
	}
	p.resolved = true
	c.pending = slices.DeleteFunc(c.pending, func(q *pendingCommand) bool { return q == p })
}

func (c *Client) failPendingLocked(cause error) {
	for _, p := range c.pending {
		p.resolved = true
		p.ch <- ackResult{err: cause}
	}
	c.pending = nil
}

// reconnect tears down the failed transport, bulk-fails outstanding
// work, and retries the connection with capped exponential backoff and
// jitter. It returns false when the client is stopping or auto
// reconnect is disabled.
func (c *Client) reconnect() bool {
	c.mu.Lock()
	old := c.transport
	c.transport = nil
	if c.connState != StateSynced && c.syncedCh != nil {
		// Wake sync waiters parked on the dead connection; they loop
		// back in WaitSynced and pick up the replacement channel.
		close(c.syncedCh)
	}
	c.connState = StateReconnecting
	c.failPendingLocked(ErrConnectionLost)
	c.failSessionsLocked(ErrConnectionLost)
	c.device = state.DeviceState{}
	c.syncedCh = make(chan struct{})
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}
	c.emit(Event{Kind: EventDisconnected})
	c.log.Info("disconnected")

	if c.cfg.DisableAutoReconnect || c.isStopped() {
		return false
	}

	delay := c.cfg.ReconnectInitialBackoff
	for {
		if c.isStopped() {
			return false
		}

		dialCtx, cancel := context.WithTimeout(context.Background(), c.cfg.ConnectTimeout)
		t, err := c.dial(dialCtx)
		cancel()
		if err == nil {
			c.mu.Lock()
			if c.stopped {
				c.mu.Unlock()
				t.Close()
				return false
			}
			c.transport = t
			c.connState = StateHandshaking
			c.lastInbound = time.Now()
			c.mu.Unlock()
			c.emit(Event{Kind: EventConnected})
			c.log.Info("reconnected", "host", c.cfg.Host, "port", c.cfg.Port)
			return true
		}

		capped := min(delay, c.cfg.ReconnectMaxBackoff)
		wait := capped + time.Duration(float64(capped)*c.cfg.ReconnectJitter*c.rand())
		c.log.Debug("reconnect attempt failed", "err", err, "next_try_in", wait)
		select {
		case <-time.After(wait):
		case <-c.stopCh:
			return false
		}
		delay = min(capped*2, c.cfg.ReconnectMaxBackoff)
	}
}

// heartbeatLoop periodically sends Heartbeat while synced. It runs for
// the lifetime of the client, across reconnects.
func (c *Client) heartbeatLoop() {
	defer close(c.hbDone)
	if c.cfg.HeartbeatInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			// sendMu keeps the heartbeat from slipping between another
			// caller's pending registration and its write, which would
			// let the heartbeat's ack resolve that caller's entry.
			c.sendMu.Lock()
			c.mu.Lock()
			t := c.transport
			synced := c.connState == StateSynced
			c.mu.Unlock()
			if !synced || t == nil {
				c.sendMu.Unlock()
				continue
			}
			err := t.WriteLine(commands.Heartbeat().Line, c.cfg.CommandTimeout)
			c.sendMu.Unlock()
			if err != nil {
				c.log.Warn("heartbeat send failed", "err", err)
			}
		}
	}
}

func (c *Client) emit(ev Event) {
	c.mu.Lock()
	ev.State = c.device
	obs := slices.Clone(c.observers)
	c.mu.Unlock()
	for _, o := range obs {
		o.fn(ev)
	}
}

func (c *Client) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *Client) livenessExpired() bool {
	if c.cfg.LivenessTimeout <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.lastInbound) > c.cfg.LivenessTimeout
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr interface{ Timeout() bool }
	return errors.As(err, &nerr) && nerr.Timeout()
}
