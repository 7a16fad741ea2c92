// Package state holds the canonical in-memory model of one Envy device
// and the pure reducer that folds parsed protocol messages into it.
//
// The reducer is a total function: message kinds that carry no state
// (plain acknowledgements, unknown lines) return the input unchanged.
// Stateful kinds update exactly the addressed fields, last write wins,
// strictly in message arrival order. Apply never mutates its input;
// keyed collections are cloned before modification, so any DeviceState
// value handed out earlier remains a stable snapshot.
package state

import (
	"strconv"
	"strings"

	"github.com/envyctl/go-envy/protocol"
)

// TemporaryNamespace is the option-path prefix of the volatile option
// subtree that a ResetTemporary notification clears.
const TemporaryNamespace = `temporary\`

// PowerState describes the device power status as far as notifications
// have revealed it.
type PowerState int

const (
	// PowerUnknown means no power-related notification has arrived yet.
	PowerUnknown PowerState = iota
	// PowerOn means the device is up (welcome greeting observed).
	PowerOn
	// PowerStandby means the device reported entering standby.
	PowerStandby
	// PowerOff means the device reported powering off.
	PowerOff
)

// String returns the power state name.
func (p PowerState) String() string {
	switch p {
	case PowerOn:
		return "on"
	case PowerStandby:
		return "standby"
	case PowerOff:
		return "off"
	default:
		return "unknown"
	}
}

// Flag is a tri-state boolean whose zero value means "not reported
// yet".
type Flag int

const (
	// FlagUnknown means the device has not reported this yet.
	FlagUnknown Flag = iota
	// FlagTrue means the device reported the condition as true.
	FlagTrue
	// FlagFalse means the device reported the condition as false.
	FlagFalse
)

// FlagOf converts a reported boolean into a Flag.
func FlagOf(v bool) Flag {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

// Bool unpacks the flag; known is false for FlagUnknown.
func (f Flag) Bool() (value, known bool) {
	return f == FlagTrue, f != FlagUnknown
}

// ButtonEvent is the most recent remote-control button notification.
type ButtonEvent struct {
	Action string // "press" or "hold"
	Button string
}

// ProfileRef addresses one profile within a profile group.
type ProfileRef struct {
	Group string
	Index int
}

// RenamedFile records a rename notification (3D LUT files).
type RenamedFile struct {
	Old string
	New string
}

// StoredSettings records a StoreSettings notification.
type StoredSettings struct {
	Target string
	Name   string
}

// DeviceState is the canonical aggregate. At any instant it reflects
// the cumulative effect of every message reduced so far, in arrival
// order, and only that. The zero value is the state of a device nothing
// is known about; maps are lazily allocated by Apply.
type DeviceState struct {
	Version     string
	SeenWelcome bool
	Power       PowerState
	MACAddress  string

	ActiveProfile    ProfileRef
	ActiveProfileSet bool

	IncomingSignal *protocol.IncomingSignalInfoMessage
	OutgoingSignal *protocol.OutgoingSignalInfoMessage
	AspectRatio    *protocol.AspectRatioMessage
	MaskingRatio   *protocol.MaskingRatioMessage
	Temperatures   *protocol.TemperaturesMessage
	SignalPresent  Flag
	ToneMapEnabled Flag

	CurrentMenu     string
	AspectRatioMode string
	LastButton      *ButtonEvent

	SettingPages  map[string]string
	ConfigPages   map[string]string
	ProfileGroups map[string]string
	Profiles      map[string]string

	// Options is keyed by the hierarchical, backslash-separated option
	// path.
	Options map[string]protocol.OptionMessage

	LastOptionChange  *protocol.ChangeOptionMessage
	LastInheritOption *protocol.InheritOptionMessage

	LastUploaded3DLUT string
	LastRenamed3DLUT  *RenamedFile
	LastDeleted3DLUT  string

	LastStoreSettings   *StoredSettings
	LastRestoreSettings string

	SettingsUploadCount   int
	TemporaryResetCount   int
	DisplayChangedCount   int
	FirmwareUpdatePending bool
	MissingHeartbeatSeen  bool

	LastSystemAction string
}

// Synced reports whether the initial greeting has been observed on the
// current connection.
func (s DeviceState) Synced() bool { return s.SeenWelcome }

// Apply reduces one message into the state and returns the new state.
// The input state is never modified.
func Apply(s DeviceState, msg protocol.Message) DeviceState {
	switch m := msg.(type) {
	case protocol.WelcomeMessage:
		s.Version = m.Version
		s.SeenWelcome = true
		s.Power = PowerOn
	case protocol.StandbyMessage:
		s.Power = PowerStandby
	case protocol.PowerOffMessage:
		s.Power = PowerOff
	case protocol.RestartMessage:
		s.LastSystemAction = "Restart"
	case protocol.ReloadSoftwareMessage:
		s.LastSystemAction = "ReloadSoftware"
	case protocol.NoSignalMessage:
		s.SignalPresent = FlagFalse
	case protocol.OpenMenuMessage:
		s.CurrentMenu = m.Menu
	case protocol.CloseMenuMessage:
		s.CurrentMenu = ""
	case protocol.KeyPressMessage:
		s.LastButton = &ButtonEvent{Action: "press", Button: m.Button}
	case protocol.KeyHoldMessage:
		s.LastButton = &ButtonEvent{Action: "hold", Button: m.Button}
	case protocol.SetAspectRatioModeMessage:
		s.AspectRatioMode = m.Mode
	case protocol.MacAddressMessage:
		s.MACAddress = m.MAC
	case protocol.TemperaturesMessage:
		s.Temperatures = &m
	case protocol.IncomingSignalInfoMessage:
		s.IncomingSignal = &m
		s.SignalPresent = FlagTrue
	case protocol.OutgoingSignalInfoMessage:
		s.OutgoingSignal = &m
	case protocol.AspectRatioMessage:
		s.AspectRatio = &m
	case protocol.MaskingRatioMessage:
		s.MaskingRatio = &m
	case protocol.ActivateProfileMessage:
		s.ActiveProfile = ProfileRef{Group: m.ProfileGroup, Index: m.ProfileIndex}
		s.ActiveProfileSet = true
	case protocol.ActiveProfileMessage:
		s.ActiveProfile = ProfileRef{Group: m.ProfileGroup, Index: m.ProfileIndex}
		s.ActiveProfileSet = true
	case protocol.CreateProfileGroupMessage:
		s.ProfileGroups = withEntry(s.ProfileGroups, m.GroupID, m.Name)
	case protocol.RenameProfileGroupMessage:
		s.ProfileGroups = withEntry(s.ProfileGroups, m.GroupID, m.Name)
	case protocol.ProfileGroupMessage:
		s.ProfileGroups = withEntry(s.ProfileGroups, m.GroupID, m.Name)
	case protocol.DeleteProfileGroupMessage:
		s.ProfileGroups = withoutEntry(s.ProfileGroups, m.GroupID)
	case protocol.CreateProfileMessage:
		s.Profiles = withEntry(s.Profiles, profileKey(m.ProfileGroup, m.ProfileIndex), m.Name)
	case protocol.RenameProfileMessage:
		s.Profiles = withEntry(s.Profiles, profileKey(m.ProfileGroup, m.ProfileIndex), m.Name)
	case protocol.ProfileMessage:
		s.Profiles = withEntry(s.Profiles, m.ProfileID, m.Name)
	case protocol.DeleteProfileMessage:
		s.Profiles = withoutEntry(s.Profiles, profileKey(m.ProfileGroup, m.ProfileIndex))
	case protocol.SettingPageMessage:
		s.SettingPages = withEntry(s.SettingPages, m.PageID, m.Name)
	case protocol.ConfigPageMessage:
		s.ConfigPages = withEntry(s.ConfigPages, m.PageID, m.Name)
	case protocol.OptionMessage:
		s.Options = withOption(s.Options, m.OptionID, m)
	case protocol.ChangeOptionMessage:
		s.LastOptionChange = &m
		s.Options = withOption(s.Options, m.OptionIDPath, protocol.OptionMessage{
			OptionType:     m.OptionType,
			OptionID:       m.OptionIDPath,
			CurrentValue:   m.CurrentValue,
			EffectiveValue: m.EffectiveValue,
		})
	case protocol.InheritOptionMessage:
		s.LastInheritOption = &m
	case protocol.ResetTemporaryMessage:
		s.Options = withoutNamespace(s.Options, TemporaryNamespace)
		s.TemporaryResetCount++
	case protocol.Upload3DLUTFileMessage:
		s.LastUploaded3DLUT = m.Filename
	case protocol.Rename3DLUTFileMessage:
		s.LastRenamed3DLUT = &RenamedFile{Old: m.OldFilename, New: m.NewFilename}
	case protocol.Delete3DLUTFileMessage:
		s.LastDeleted3DLUT = m.Filename
	case protocol.UploadSettingsFileMessage:
		s.SettingsUploadCount++
	case protocol.StoreSettingsMessage:
		s.LastStoreSettings = &StoredSettings{Target: m.Target, Name: m.StorageName}
	case protocol.RestoreSettingsMessage:
		s.LastRestoreSettings = m.Target
	case protocol.ToggleMessage:
		s.LastSystemAction = "Toggle:" + m.Option
	case protocol.ToneMapOnMessage:
		s.ToneMapEnabled = FlagTrue
	case protocol.ToneMapOffMessage:
		s.ToneMapEnabled = FlagFalse
	case protocol.DisplayChangedMessage:
		s.DisplayChangedCount++
	case protocol.RefreshLicenseInfoMessage:
		s.LastSystemAction = "RefreshLicenseInfo"
	case protocol.Force1080p60OutputMessage:
		s.LastSystemAction = "Force1080p60Output"
	case protocol.HotplugMessage:
		s.LastSystemAction = "Hotplug"
	case protocol.FirmwareUpdateMessage:
		s.FirmwareUpdatePending = true
	case protocol.MissingHeartbeatMessage:
		s.MissingHeartbeatSeen = true
	case protocol.AddProfileToPageMessage:
		s.LastSystemAction = "AddProfileToPage"
	case protocol.RemoveProfileFromPageMessage:
		s.LastSystemAction = "RemoveProfileFromPage"
	}
	return s
}

func profileKey(group string, index int) string {
	return group + "_" + strconv.Itoa(index)
}

func withEntry(m map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

func withoutEntry(m map[string]string, key string) map[string]string {
	if _, ok := m[key]; !ok {
		return m
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func withOption(m map[string]protocol.OptionMessage, key string, value protocol.OptionMessage) map[string]protocol.OptionMessage {
	out := make(map[string]protocol.OptionMessage, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

// withoutNamespace drops every option whose path starts with prefix.
func withoutNamespace(m map[string]protocol.OptionMessage, prefix string) map[string]protocol.OptionMessage {
	out := make(map[string]protocol.OptionMessage, len(m))
	for k, v := range m {
		if !strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}
