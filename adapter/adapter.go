// Package adapter flattens DeviceState into comparison-friendly
// snapshots and derives field deltas and high-level events between
// consecutive snapshots. It is the glue layer for integration
// coordinators that poll or subscribe to the client and want to know
// "what changed" rather than "what arrived".
package adapter

import (
	"reflect"
	"sort"

	"github.com/envyctl/go-envy/protocol"
	"github.com/envyctl/go-envy/state"
)

// Pair is one keyed entry of a device collection, in sorted order.
type Pair struct {
	Key   string
	Value string
}

// OptionEntry is one option row of a snapshot.
type OptionEntry struct {
	Path      string
	Type      string
	Current   protocol.Scalar
	Effective protocol.Scalar
}

// Temperatures holds the four fixed temperature readings.
type Temperatures struct {
	GPU       int
	HDMIInput int
	CPU       int
	Mainboard int
}

// Snapshot is an immutable flattened view of DeviceState. Keyed
// collections are rendered as sorted slices so two snapshots built from
// equal states compare equal under reflect.DeepEqual.
type Snapshot struct {
	Synced  bool
	Version string
	Power   state.PowerState

	SignalPresent state.Flag
	MACAddress    string

	ActiveProfileGroup string
	ActiveProfileIndex int
	ActiveProfileSet   bool

	CurrentMenu     string
	AspectRatioMode string

	IncomingSignal *protocol.IncomingSignalInfoMessage
	OutgoingSignal *protocol.OutgoingSignalInfoMessage
	AspectRatio    *protocol.AspectRatioMessage
	MaskingRatio   *protocol.MaskingRatioMessage
	ToneMapEnabled state.Flag
	Temperatures   *Temperatures

	SettingPages  []Pair
	ConfigPages   []Pair
	ProfileGroups []Pair
	Profiles      []Pair
	Options       []OptionEntry

	LastSystemAction string
	LastButton       *state.ButtonEvent

	LastInheritOptionPath      string
	LastInheritOptionEffective protocol.Scalar

	LastUploaded3DLUT string
	LastRenamed3DLUT  *state.RenamedFile
	LastDeleted3DLUT  string

	LastStoreSettings   *state.StoredSettings
	LastRestoreSettings string

	TemporaryResetCount int
	DisplayChangedCount int
	SettingsUploadCount int
}

// Delta records one snapshot field that changed between updates.
type Delta struct {
	Field string
	Old   any
	New   any
}

// Event is a high-level notification for integration consumers.
type Event struct {
	Kind    string
	Payload map[string]any
}

// SnapshotFrom builds a Snapshot from a reduced device state.
func SnapshotFrom(s state.DeviceState) Snapshot {
	snap := Snapshot{
		Synced:              s.Synced(),
		Version:             s.Version,
		Power:               s.Power,
		SignalPresent:       s.SignalPresent,
		MACAddress:          s.MACAddress,
		ActiveProfileGroup:  s.ActiveProfile.Group,
		ActiveProfileIndex:  s.ActiveProfile.Index,
		ActiveProfileSet:    s.ActiveProfileSet,
		CurrentMenu:         s.CurrentMenu,
		AspectRatioMode:     s.AspectRatioMode,
		IncomingSignal:      s.IncomingSignal,
		OutgoingSignal:      s.OutgoingSignal,
		AspectRatio:         s.AspectRatio,
		MaskingRatio:        s.MaskingRatio,
		ToneMapEnabled:      s.ToneMapEnabled,
		SettingPages:        sortedPairs(s.SettingPages),
		ConfigPages:         sortedPairs(s.ConfigPages),
		ProfileGroups:       sortedPairs(s.ProfileGroups),
		Profiles:            sortedPairs(s.Profiles),
		Options:             sortedOptions(s.Options),
		LastSystemAction:    s.LastSystemAction,
		LastButton:          s.LastButton,
		LastUploaded3DLUT:   s.LastUploaded3DLUT,
		LastRenamed3DLUT:    s.LastRenamed3DLUT,
		LastDeleted3DLUT:    s.LastDeleted3DLUT,
		LastStoreSettings:   s.LastStoreSettings,
		LastRestoreSettings: s.LastRestoreSettings,
		TemporaryResetCount: s.TemporaryResetCount,
		DisplayChangedCount: s.DisplayChangedCount,
		SettingsUploadCount: s.SettingsUploadCount,
	}
	if s.Temperatures != nil {
		snap.Temperatures = &Temperatures{
			GPU:       s.Temperatures.GPU,
			HDMIInput: s.Temperatures.HDMIInput,
			CPU:       s.Temperatures.CPU,
			Mainboard: s.Temperatures.Mainboard,
		}
	}
	if s.LastInheritOption != nil {
		snap.LastInheritOptionPath = s.LastInheritOption.OptionIDPath
		snap.LastInheritOptionEffective = s.LastInheritOption.EffectiveValue
	}
	return snap
}

// Adapter tracks the previous snapshot and reports what changed on each
// update. Not safe for concurrent use; drive it from one goroutine,
// typically the client observer.
type Adapter struct {
	last    Snapshot
	hasLast bool
}

// New returns an adapter with no snapshot history.
func New() *Adapter { return &Adapter{} }

// LastSnapshot returns the most recent snapshot, if any.
func (a *Adapter) LastSnapshot() (Snapshot, bool) {
	return a.last, a.hasLast
}

// Update snapshots the state and, when a previous snapshot exists,
// returns the field deltas and derived events against it. The first
// update establishes the baseline and reports nothing.
func (a *Adapter) Update(s state.DeviceState) (Snapshot, []Delta, []Event) {
	snap := SnapshotFrom(s)
	prev, had := a.last, a.hasLast
	a.last, a.hasLast = snap, true
	if !had {
		return snap, nil, nil
	}
	return snap, buildDeltas(prev, snap), buildEvents(prev, snap)
}

func sortedPairs(m map[string]string) []Pair {
	if len(m) == 0 {
		return nil
	}
	out := make([]Pair, 0, len(m))
	for k, v := range m {
		out = append(out, Pair{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sortedOptions(m map[string]protocol.OptionMessage) []OptionEntry {
	if len(m) == 0 {
		return nil
	}
	out := make([]OptionEntry, 0, len(m))
	for k, v := range m {
		out = append(out, OptionEntry{
			Path:      k,
			Type:      v.OptionType,
			Current:   v.CurrentValue,
			Effective: v.EffectiveValue,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// buildDeltas walks the snapshot fields by reflection so new fields
// participate without a matching edit here.
func buildDeltas(prev, cur Snapshot) []Delta {
	var deltas []Delta
	pv := reflect.ValueOf(prev)
	cv := reflect.ValueOf(cur)
	t := pv.Type()
	for i := 0; i < t.NumField(); i++ {
		oldVal := pv.Field(i).Interface()
		newVal := cv.Field(i).Interface()
		if !reflect.DeepEqual(oldVal, newVal) {
			deltas = append(deltas, Delta{Field: t.Field(i).Name, Old: oldVal, New: newVal})
		}
	}
	return deltas
}

func buildEvents(prev, cur Snapshot) []Event {
	var events []Event

	counter := func(kind string, old, now int) {
		if now > old {
			events = append(events, Event{Kind: kind, Payload: map[string]any{
				"count":     now,
				"increment": now - old,
			}})
		}
	}
	change := func(kind, key string, old, now any) {
		if now == nil || reflect.DeepEqual(old, now) {
			return
		}
		if v := reflect.ValueOf(now); v.Kind() == reflect.Pointer && v.IsNil() {
			return
		}
		if s, ok := now.(string); ok && s == "" {
			return
		}
		events = append(events, Event{Kind: kind, Payload: map[string]any{key: now}})
	}

	counter("temporary_reset", prev.TemporaryResetCount, cur.TemporaryResetCount)
	counter("display_changed", prev.DisplayChangedCount, cur.DisplayChangedCount)
	counter("settings_uploaded", prev.SettingsUploadCount, cur.SettingsUploadCount)

	change("system_action", "action", prev.LastSystemAction, cur.LastSystemAction)
	change("button", "button", prev.LastButton, cur.LastButton)
	change("option_inherited", "path", prev.LastInheritOptionPath, cur.LastInheritOptionPath)
	change("lut_uploaded", "filename", prev.LastUploaded3DLUT, cur.LastUploaded3DLUT)
	change("lut_renamed", "rename", prev.LastRenamed3DLUT, cur.LastRenamed3DLUT)
	change("lut_deleted", "filename", prev.LastDeleted3DLUT, cur.LastDeleted3DLUT)
	change("settings_stored", "store", prev.LastStoreSettings, cur.LastStoreSettings)
	change("settings_restored", "target", prev.LastRestoreSettings, cur.LastRestoreSettings)

	return events
}
