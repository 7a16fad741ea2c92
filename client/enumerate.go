package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/envyctl/go-envy/commands"
	"github.com/envyctl/go-envy/protocol"
)

// DefaultEnumTimeout bounds an enumeration collection when the caller
// passes a non-positive timeout.
const DefaultEnumTimeout = 3 * time.Second

type enumResult struct {
	items []protocol.Message
	err   error
}

// enumSession is one in-flight streamed enumeration. The consumer
// goroutine appends matching item notifications and resolves the
// session when the end marker arrives; the collecting caller races
// that against its timeout. At most one session per item kind exists
// at a time.
type enumSession struct {
	id       uuid.UUID
	command  string
	itemKind protocol.Kind
	endKind  protocol.Kind
	items    []protocol.Message
	ch       chan enumResult
	resolved bool
}

// EnumProfileGroups collects the profile-group enumeration.
func (c *Client) EnumProfileGroups(ctx context.Context, timeout time.Duration) ([]protocol.ProfileGroupMessage, error) {
	items, err := c.collect(ctx, commands.EnumProfileGroups(),
		protocol.KindProfileGroup, protocol.KindProfileGroupEnd, timeout)
	if err != nil {
		return nil, err
	}
	out := make([]protocol.ProfileGroupMessage, 0, len(items))
	for _, item := range items {
		out = append(out, item.(protocol.ProfileGroupMessage))
	}
	return out, nil
}

// EnumProfiles collects the profile enumeration for one group.
func (c *Client) EnumProfiles(ctx context.Context, profileGroup string, timeout time.Duration) ([]protocol.ProfileMessage, error) {
	items, err := c.collect(ctx, commands.EnumProfiles(profileGroup),
		protocol.KindProfile, protocol.KindProfileEnd, timeout)
	if err != nil {
		return nil, err
	}
	out := make([]protocol.ProfileMessage, 0, len(items))
	for _, item := range items {
		out = append(out, item.(protocol.ProfileMessage))
	}
	return out, nil
}

// EnumSettingPages collects the setting-page enumeration.
func (c *Client) EnumSettingPages(ctx context.Context, timeout time.Duration) ([]protocol.SettingPageMessage, error) {
	items, err := c.collect(ctx, commands.EnumSettingPages(),
		protocol.KindSettingPage, protocol.KindSettingPageEnd, timeout)
	if err != nil {
		return nil, err
	}
	out := make([]protocol.SettingPageMessage, 0, len(items))
	for _, item := range items {
		out = append(out, item.(protocol.SettingPageMessage))
	}
	return out, nil
}

// EnumConfigPages collects the config-page enumeration.
func (c *Client) EnumConfigPages(ctx context.Context, timeout time.Duration) ([]protocol.ConfigPageMessage, error) {
	items, err := c.collect(ctx, commands.EnumConfigPages(),
		protocol.KindConfigPage, protocol.KindConfigPageEnd, timeout)
	if err != nil {
		return nil, err
	}
	out := make([]protocol.ConfigPageMessage, 0, len(items))
	for _, item := range items {
		out = append(out, item.(protocol.ConfigPageMessage))
	}
	return out, nil
}

// EnumOptions collects the option enumeration for a page or option
// path.
func (c *Client) EnumOptions(ctx context.Context, pageOrPath string, timeout time.Duration) ([]protocol.OptionMessage, error) {
	items, err := c.collect(ctx, commands.EnumOptions(pageOrPath),
		protocol.KindOption, protocol.KindOptionEnd, timeout)
	if err != nil {
		return nil, err
	}
	out := make([]protocol.OptionMessage, 0, len(items))
	for _, item := range items {
		out = append(out, item.(protocol.OptionMessage))
	}
	return out, nil
}

// collect issues the triggering command and gathers the streamed items
// until the end marker, the timeout, or cancellation. The session is
// torn down on every outcome so a later call of the same kind may
// proceed.
func (c *Client) collect(ctx context.Context, cmd commands.Command, itemKind, endKind protocol.Kind, timeout time.Duration) ([]protocol.Message, error) {
	if timeout <= 0 {
		timeout = DefaultEnumTimeout
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil, ErrClientStopped
	}
	if _, busy := c.sessions[itemKind]; busy {
		c.mu.Unlock()
		return nil, ErrEnumerationInProgress
	}
	s := &enumSession{
		id:       uuid.New(),
		command:  cmd.Line,
		itemKind: itemKind,
		endKind:  endKind,
		ch:       make(chan enumResult, 1),
	}
	c.sessions[itemKind] = s
	c.mu.Unlock()

	if _, err := c.Send(ctx, cmd, true); err != nil {
		c.teardownSession(s)
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-s.ch:
		return res.items, res.err
	case <-timer.C:
		collected := c.teardownSession(s)
		return nil, &EnumerationTimeoutError{
			Command:   cmd.Line,
			Kind:      itemKind,
			Timeout:   timeout,
			Collected: collected,
		}
	case <-ctx.Done():
		c.teardownSession(s)
		return nil, ctx.Err()
	}
}

// routeSessionLocked feeds one inbound message to the matching
// session, if any. Non-matching kinds are unrelated to the session and
// flow to observers only.
func (c *Client) routeSessionLocked(msg protocol.Message) {
	for _, s := range c.sessions {
		switch msg.Kind() {
		case s.itemKind:
			s.items = append(s.items, msg)
			return
		case s.endKind:
			s.resolved = true
			delete(c.sessions, s.itemKind)
			s.ch <- enumResult{items: s.items}
			return
		}
	}
}

// teardownSession withdraws a session after timeout or cancellation
// and reports how many items it had collected.
func (c *Client) teardownSession(s *enumSession) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !s.resolved {
		s.resolved = true
		delete(c.sessions, s.itemKind)
	}
	return len(s.items)
}

func (c *Client) failSessionsLocked(cause error) {
	for kind, s := range c.sessions {
		s.resolved = true
		delete(c.sessions, kind)
		s.ch <- enumResult{err: cause}
	}
}
