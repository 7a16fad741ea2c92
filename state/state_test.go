package state

import (
	"reflect"
	"testing"

	"github.com/envyctl/go-envy/protocol"
)

func reduceAll(msgs ...protocol.Message) DeviceState {
	var s DeviceState
	for _, m := range msgs {
		s = Apply(s, m)
	}
	return s
}

func TestApplyWelcome(t *testing.T) {
	s := Apply(DeviceState{}, protocol.WelcomeMessage{Version: "1.8.7.9"})
	if !s.Synced() {
		t.Error("welcome should mark the state synced")
	}
	if s.Version != "1.8.7.9" {
		t.Errorf("version = %q", s.Version)
	}
	if s.Power != PowerOn {
		t.Errorf("power = %v, want on", s.Power)
	}
}

func TestApplyDeterministic(t *testing.T) {
	msgs := []protocol.Message{
		protocol.WelcomeMessage{Version: "1.0"},
		protocol.SettingPageMessage{PageID: "P1", Name: "HDR"},
		protocol.OptionMessage{OptionType: "INTEGER", OptionID: "hdrNits", CurrentValue: protocol.Int(800), EffectiveValue: protocol.Int(800)},
		protocol.ToneMapOnMessage{},
	}
	a := reduceAll(msgs...)
	b := reduceAll(msgs...)
	if !reflect.DeepEqual(a, b) {
		t.Error("same message sequence produced different states")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := reduceAll(
		protocol.SettingPageMessage{PageID: "P1", Name: "HDR"},
		protocol.OptionMessage{OptionType: "INTEGER", OptionID: "hdrNits", CurrentValue: protocol.Int(800), EffectiveValue: protocol.Int(800)},
	)
	before := reflect.ValueOf(base.SettingPages).Pointer()

	_ = Apply(base, protocol.SettingPageMessage{PageID: "P2", Name: "SDR"})
	_ = Apply(base, protocol.OptionMessage{OptionType: "INTEGER", OptionID: "hdrNits", CurrentValue: protocol.Int(900), EffectiveValue: protocol.Int(900)})

	if reflect.ValueOf(base.SettingPages).Pointer() != before {
		t.Error("input map identity changed")
	}
	if base.SettingPages["P1"] != "HDR" || len(base.SettingPages) != 1 {
		t.Errorf("input state mutated: %#v", base.SettingPages)
	}
	if got, _ := base.Options["hdrNits"].CurrentValue.IntValue(); got != 800 {
		t.Errorf("input option mutated: %v", base.Options["hdrNits"])
	}
}

func TestApplyAckAndUnknownAreNoops(t *testing.T) {
	base := reduceAll(protocol.WelcomeMessage{Version: "1.0"})
	for _, msg := range []protocol.Message{
		protocol.OKMessage{},
		protocol.ErrorMessage{Reason: "nope"},
		protocol.UnknownMessage{Raw: "garbage"},
	} {
		got := Apply(base, msg)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("Apply(%T) changed state", msg)
		}
	}
}

func TestApplyLastWriteWins(t *testing.T) {
	s := reduceAll(
		protocol.OpenMenuMessage{Menu: "Settings"},
		protocol.OpenMenuMessage{Menu: "Profiles"},
	)
	if s.CurrentMenu != "Profiles" {
		t.Errorf("menu = %q, want Profiles", s.CurrentMenu)
	}
	s = Apply(s, protocol.CloseMenuMessage{})
	if s.CurrentMenu != "" {
		t.Errorf("menu = %q after close", s.CurrentMenu)
	}
}

func TestApplyPowerTransitions(t *testing.T) {
	s := reduceAll(protocol.WelcomeMessage{Version: "1.0"}, protocol.StandbyMessage{})
	if s.Power != PowerStandby {
		t.Errorf("power = %v, want standby", s.Power)
	}
	s = Apply(s, protocol.PowerOffMessage{})
	if s.Power != PowerOff {
		t.Errorf("power = %v, want off", s.Power)
	}
}

func TestApplySignalFlags(t *testing.T) {
	s := Apply(DeviceState{}, protocol.IncomingSignalInfoMessage{Resolution: "3840x2160"})
	if v, known := s.SignalPresent.Bool(); !known || !v {
		t.Error("signal info should set SignalPresent true")
	}
	s = Apply(s, protocol.NoSignalMessage{})
	if v, known := s.SignalPresent.Bool(); !known || v {
		t.Error("NoSignal should set SignalPresent false")
	}
}

func TestApplyProfiles(t *testing.T) {
	s := reduceAll(
		protocol.CreateProfileGroupMessage{GroupID: "GRP1", Name: "Living Room"},
		protocol.CreateProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1, Name: "Apple TV"},
		protocol.RenameProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1, Name: "Shield"},
		protocol.ActivateProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1},
	)
	if s.Profiles["SOURCE_1"] != "Shield" {
		t.Errorf("profiles = %#v", s.Profiles)
	}
	if !s.ActiveProfileSet || s.ActiveProfile != (ProfileRef{Group: "SOURCE", Index: 1}) {
		t.Errorf("active profile = %#v", s.ActiveProfile)
	}

	s = Apply(s, protocol.DeleteProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1})
	if _, ok := s.Profiles["SOURCE_1"]; ok {
		t.Error("deleted profile still present")
	}
	s = Apply(s, protocol.DeleteProfileGroupMessage{GroupID: "GRP1"})
	if _, ok := s.ProfileGroups["GRP1"]; ok {
		t.Error("deleted group still present")
	}
}

func TestApplyChangeOptionUpdatesOptions(t *testing.T) {
	s := Apply(DeviceState{}, protocol.ChangeOptionMessage{
		OptionType:     "INTEGER",
		OptionIDPath:   `temporary\hdrNits`,
		CurrentValue:   protocol.Int(900),
		EffectiveValue: protocol.Int(900),
	})
	opt, ok := s.Options[`temporary\hdrNits`]
	if !ok {
		t.Fatal("ChangeOption did not record the option")
	}
	if v, _ := opt.CurrentValue.IntValue(); v != 900 {
		t.Errorf("current = %v", opt.CurrentValue)
	}
}

func TestResetTemporaryClearsOnlyNamespace(t *testing.T) {
	s := reduceAll(
		protocol.OptionMessage{OptionType: "INTEGER", OptionID: `temporary\hdrNits`, CurrentValue: protocol.Int(900), EffectiveValue: protocol.Int(900)},
		protocol.OptionMessage{OptionType: "INTEGER", OptionID: `hdr\nits`, CurrentValue: protocol.Int(800), EffectiveValue: protocol.Int(800)},
		protocol.ResetTemporaryMessage{},
	)
	if _, ok := s.Options[`temporary\hdrNits`]; ok {
		t.Error("temporary option survived reset")
	}
	if _, ok := s.Options[`hdr\nits`]; !ok {
		t.Error("persistent option was cleared")
	}
	if s.TemporaryResetCount != 1 {
		t.Errorf("reset count = %d", s.TemporaryResetCount)
	}
}

func TestApplyCounters(t *testing.T) {
	s := reduceAll(
		protocol.UploadSettingsFileMessage{},
		protocol.UploadSettingsFileMessage{},
		protocol.DisplayChangedMessage{},
	)
	if s.SettingsUploadCount != 2 {
		t.Errorf("upload count = %d", s.SettingsUploadCount)
	}
	if s.DisplayChangedCount != 1 {
		t.Errorf("display changed count = %d", s.DisplayChangedCount)
	}
}

func TestApplyLutAndSettingsHistory(t *testing.T) {
	s := reduceAll(
		protocol.Upload3DLUTFileMessage{Filename: "a.3dlut"},
		protocol.Rename3DLUTFileMessage{OldFilename: "a.3dlut", NewFilename: "b.3dlut"},
		protocol.Delete3DLUTFileMessage{Filename: "b.3dlut"},
		protocol.StoreSettingsMessage{Target: "USB", StorageName: "backup"},
		protocol.RestoreSettingsMessage{Target: "USB"},
	)
	if s.LastUploaded3DLUT != "a.3dlut" {
		t.Errorf("uploaded = %q", s.LastUploaded3DLUT)
	}
	if s.LastRenamed3DLUT == nil || s.LastRenamed3DLUT.New != "b.3dlut" {
		t.Errorf("renamed = %#v", s.LastRenamed3DLUT)
	}
	if s.LastDeleted3DLUT != "b.3dlut" {
		t.Errorf("deleted = %q", s.LastDeleted3DLUT)
	}
	if s.LastStoreSettings == nil || s.LastStoreSettings.Name != "backup" {
		t.Errorf("store = %#v", s.LastStoreSettings)
	}
	if s.LastRestoreSettings != "USB" {
		t.Errorf("restore = %q", s.LastRestoreSettings)
	}
}

func TestFlag(t *testing.T) {
	var f Flag
	if _, known := f.Bool(); known {
		t.Error("zero flag should be unknown")
	}
	if v, known := FlagOf(true).Bool(); !known || !v {
		t.Error("FlagOf(true) mismatch")
	}
	if v, known := FlagOf(false).Bool(); !known || v {
		t.Error("FlagOf(false) mismatch")
	}
}

func TestPowerStateString(t *testing.T) {
	tests := map[PowerState]string{
		PowerUnknown: "unknown",
		PowerOn:      "on",
		PowerStandby: "standby",
		PowerOff:     "off",
	}
	for ps, want := range tests {
		if got := ps.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ps, got, want)
		}
	}
}
