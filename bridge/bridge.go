// Package bridge turns adapter output into the shapes smart-home style
// integrations consume: a flat coordinator payload per snapshot, event
// bus records, a named action registry resolving to client commands,
// remote-operation normalization, and profile selector helpers.
package bridge

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/envyctl/go-envy/adapter"
	"github.com/envyctl/go-envy/protocol"
	"github.com/envyctl/go-envy/state"
)

// EventTypePrefix namespaces bus event types emitted by the bridge.
const EventTypePrefix = "envy."

// BusEvent is one event bus record derived from an adapter event.
type BusEvent struct {
	Type string
	Data map[string]any
}

// Update packages one adapter update for a polling coordinator.
type Update struct {
	Data          map[string]any
	ChangedFields []string
	Events        []BusEvent
}

// Emitter receives dispatched bus events.
type Emitter func(eventType string, data map[string]any)

// Payload builds the flat coordinator payload for a snapshot. Tri-state
// flags render as nil until the device has reported them.
func Payload(snap adapter.Snapshot) map[string]any {
	options := make(map[string]any, len(snap.Options))
	for _, opt := range snap.Options {
		options[opt.Path] = map[string]any{
			"type":      opt.Type,
			"current":   opt.Current,
			"effective": opt.Effective,
		}
	}
	return map[string]any{
		"available":                     snap.Synced,
		"power_state":                   snap.Power.String(),
		"version":                       snap.Version,
		"signal_present":                flagValue(snap.SignalPresent),
		"mac_address":                   snap.MACAddress,
		"active_profile_group":          snap.ActiveProfileGroup,
		"active_profile_index":          snap.ActiveProfileIndex,
		"current_menu":                  snap.CurrentMenu,
		"aspect_ratio_mode":             snap.AspectRatioMode,
		"tone_map_enabled":              flagValue(snap.ToneMapEnabled),
		"temperatures":                  snap.Temperatures,
		"settings_pages":                pairMap(snap.SettingPages),
		"config_pages":                  pairMap(snap.ConfigPages),
		"profile_groups":                pairMap(snap.ProfileGroups),
		"profiles":                      pairMap(snap.Profiles),
		"options":                       options,
		"last_system_action":            snap.LastSystemAction,
		"last_button_event":             snap.LastButton,
		"last_inherit_option_path":      snap.LastInheritOptionPath,
		"last_inherit_option_effective": snap.LastInheritOptionEffective,
		"last_uploaded_3dlut":           snap.LastUploaded3DLUT,
		"last_renamed_3dlut":            snap.LastRenamed3DLUT,
		"last_deleted_3dlut":            snap.LastDeleted3DLUT,
		"last_store_settings":           snap.LastStoreSettings,
		"last_restore_settings":         snap.LastRestoreSettings,
		"temporary_reset_count":         snap.TemporaryResetCount,
		"display_changed_count":         snap.DisplayChangedCount,
		"settings_upload_count":         snap.SettingsUploadCount,
	}
}

// BusEvents maps adapter events to namespaced bus events.
func BusEvents(events []adapter.Event) []BusEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]BusEvent, 0, len(events))
	for _, ev := range events {
		data := make(map[string]any, len(ev.Payload))
		for k, v := range ev.Payload {
			data[k] = v
		}
		out = append(out, BusEvent{Type: EventTypePrefix + ev.Kind, Data: data})
	}
	return out
}

// BuildUpdate assembles one coordinator update from adapter output.
func BuildUpdate(snap adapter.Snapshot, deltas []adapter.Delta, events []adapter.Event) Update {
	changed := make([]string, 0, len(deltas))
	for _, d := range deltas {
		changed = append(changed, d.Field)
	}
	return Update{
		Data:          Payload(snap),
		ChangedFields: changed,
		Events:        BusEvents(events),
	}
}

// Dispatcher converts adapter updates and pushes bus events to an
// optional emitter. Drive it from one goroutine.
type Dispatcher struct {
	emitter    Emitter
	lastUpdate *Update
}

// NewDispatcher returns a dispatcher; emitter may be nil.
func NewDispatcher(emitter Emitter) *Dispatcher {
	return &Dispatcher{emitter: emitter}
}

// LastUpdate returns the most recent update, if any.
func (d *Dispatcher) LastUpdate() (Update, bool) {
	if d.lastUpdate == nil {
		return Update{}, false
	}
	return *d.lastUpdate, true
}

// HandleAdapterUpdate builds the update, records it and dispatches its
// bus events.
func (d *Dispatcher) HandleAdapterUpdate(snap adapter.Snapshot, deltas []adapter.Delta, events []adapter.Event) Update {
	update := BuildUpdate(snap, deltas, events)
	d.lastUpdate = &update
	if d.emitter != nil {
		for _, ev := range update.Events {
			d.emitter(ev.Type, ev.Data)
		}
	}
	return update
}

func flagValue(f state.Flag) any {
	if v, known := f.Bool(); known {
		return v
	}
	return nil
}

func pairMap(pairs []adapter.Pair) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out
}

// Action names one device command exposed to integration consumers.
type Action string

const (
	ActionStandby        Action = "standby"
	ActionPowerOff       Action = "power_off"
	ActionHotplug        Action = "hotplug"
	ActionRestart        Action = "restart"
	ActionReloadSoftware Action = "reload_software"
	ActionToneMapOn      Action = "tone_map_on"
	ActionToneMapOff     Action = "tone_map_off"
)

// ActionNames returns the sorted action names for selectors and
// validation.
func ActionNames() []string {
	names := []string{
		string(ActionStandby),
		string(ActionPowerOff),
		string(ActionHotplug),
		string(ActionRestart),
		string(ActionReloadSoftware),
		string(ActionToneMapOn),
		string(ActionToneMapOff),
	}
	sort.Strings(names)
	return names
}

// NormalizeAction parses and validates an action string.
func NormalizeAction(raw string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch action {
	case ActionStandby, ActionPowerOff, ActionHotplug, ActionRestart,
		ActionReloadSoftware, ActionToneMapOn, ActionToneMapOff:
		return action, nil
	}
	return "", fmt.Errorf("unknown action %q", raw)
}

// ActionClient is the slice of the client command surface the action
// registry needs.
type ActionClient interface {
	Standby(ctx context.Context) (protocol.Message, error)
	PowerOff(ctx context.Context) (protocol.Message, error)
	Hotplug(ctx context.Context) (protocol.Message, error)
	Restart(ctx context.Context) (protocol.Message, error)
	ReloadSoftware(ctx context.Context) (protocol.Message, error)
	ToneMapOn(ctx context.Context) (protocol.Message, error)
	ToneMapOff(ctx context.Context) (protocol.Message, error)
}

// ResolveAction maps an action name to the bound client command.
func ResolveAction(c ActionClient, raw string) (func(context.Context) (protocol.Message, error), error) {
	action, err := NormalizeAction(raw)
	if err != nil {
		return nil, err
	}
	switch action {
	case ActionStandby:
		return c.Standby, nil
	case ActionPowerOff:
		return c.PowerOff, nil
	case ActionHotplug:
		return c.Hotplug, nil
	case ActionRestart:
		return c.Restart, nil
	case ActionReloadSoftware:
		return c.ReloadSoftware, nil
	case ActionToneMapOn:
		return c.ToneMapOn, nil
	default:
		return c.ToneMapOff, nil
	}
}

// RemoteOperation is one normalized remote-control request: either a
// key press or a named action.
type RemoteOperation struct {
	Kind  string // "key" or "action"
	Value string
}

// RemoteOperations normalizes raw remote command tokens. Tokens with an
// "action:" prefix become action operations, anything else a key press;
// blank tokens are dropped.
func RemoteOperations(commands []string) []RemoteOperation {
	var ops []RemoteOperation
	for _, raw := range commands {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(token, "action:"); ok {
			action := strings.TrimSpace(rest)
			if action == "" {
				continue
			}
			ops = append(ops, RemoteOperation{Kind: "action", Value: action})
			continue
		}
		ops = append(ops, RemoteOperation{Kind: "key", Value: token})
	}
	return ops
}

var profileIDPattern = regexp.MustCompile(`^(.+?)[_:](\d+)$`)

// ParseProfileID splits a profile identifier like "SOURCE_2" or
// "SOURCE:2" into group and index. A bare numeric id falls back to the
// supplied group.
func ParseProfileID(profileID, fallbackGroup string) (group string, index int, ok bool) {
	if m := profileIDPattern.FindStringSubmatch(profileID); m != nil {
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return "", 0, false
		}
		return m[1], idx, true
	}
	if fallbackGroup != "" && isDigits(profileID) {
		idx, err := strconv.Atoi(profileID)
		if err != nil {
			return "", 0, false
		}
		return fallbackGroup, idx, true
	}
	return "", 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ProfileOption is one selector entry for profile activation.
type ProfileOption struct {
	Option       string
	GroupID      string
	ProfileIndex int
}

// BuildProfileOptions derives the sorted profile selector list from a
// snapshot. Profile ids that cannot be resolved to a group and index
// are skipped.
func BuildProfileOptions(snap adapter.Snapshot) []ProfileOption {
	groupNames := pairMap(snap.ProfileGroups)

	var options []ProfileOption
	for _, p := range snap.Profiles {
		groupID, index, ok := ParseProfileID(p.Key, snap.ActiveProfileGroup)
		if !ok {
			continue
		}
		label, found := groupNames[groupID]
		if !found {
			label = groupID
		}
		options = append(options, ProfileOption{
			Option:       label + ": " + p.Value,
			GroupID:      groupID,
			ProfileIndex: index,
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return strings.ToLower(options[i].Option) < strings.ToLower(options[j].Option)
	})
	return options
}
