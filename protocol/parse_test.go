package protocol

import (
	"reflect"
	"testing"
)

func TestParseWelcome(t *testing.T) {
	msg := Parse("WELCOME to Envy v1.8.7.9")
	welcome, ok := msg.(WelcomeMessage)
	if !ok {
		t.Fatalf("expected WelcomeMessage, got %T", msg)
	}
	if welcome.Version != "1.8.7.9" {
		t.Errorf("version = %q, want 1.8.7.9", welcome.Version)
	}
}

func TestParseWelcomeMalformed(t *testing.T) {
	for _, line := range []string{
		"WELCOME to Envy v",
		"WELCOME to Envy v1.0 extra",
	} {
		if _, ok := Parse(line).(UnknownMessage); !ok {
			t.Errorf("Parse(%q) should be unknown", line)
		}
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Message
	}{
		{"ok", "OK", OKMessage{}},
		{"error quoted", `ERROR "no such profile"`, ErrorMessage{Reason: "no such profile"}},
		{"error bare", "ERROR timeout", ErrorMessage{Reason: "timeout"}},
		{"standby", "Standby", StandbyMessage{}},
		{"power off", "PowerOff", PowerOffMessage{}},
		{"restart", "Restart", RestartMessage{}},
		{"reload", "ReloadSoftware", ReloadSoftwareMessage{}},
		{"no signal", "NoSignal", NoSignalMessage{}},
		{"open menu", "OpenMenu Settings", OpenMenuMessage{Menu: "Settings"}},
		{"close menu", "CloseMenu", CloseMenuMessage{}},
		{"key press", "KeyPress MENU", KeyPressMessage{Button: "MENU"}},
		{"key hold", "KeyHold POWER", KeyHoldMessage{Button: "POWER"}},
		{"aspect mode", "SetAspectRatioMode Auto", SetAspectRatioModeMessage{Mode: "Auto"}},
		{"activate profile", "ActivateProfile SOURCE 2", ActivateProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 2}},
		{"active profile", "ActiveProfile SOURCE 3", ActiveProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 3}},
		{"create group", `CreateProfileGroup GRP1 "Living Room"`, CreateProfileGroupMessage{GroupID: "GRP1", Name: "Living Room"}},
		{"delete group", "DeleteProfileGroup GRP1", DeleteProfileGroupMessage{GroupID: "GRP1"}},
		{"create profile", `CreateProfile SOURCE 1 "Apple TV"`, CreateProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1, Name: "Apple TV"}},
		{"rename profile", "RenameProfile SOURCE 1 Shield", RenameProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1, Name: "Shield"}},
		{"delete profile", "DeleteProfile SOURCE 1", DeleteProfileMessage{ProfileGroup: "SOURCE", ProfileIndex: 1}},
		{"add to page", "AddProfileToPage SOURCE_1 PAGE2", AddProfileToPageMessage{ProfileID: "SOURCE_1", PageID: "PAGE2"}},
		{"remove from page", "RemoveProfileFromPage SOURCE_1 PAGE2", RemoveProfileFromPageMessage{ProfileID: "SOURCE_1", PageID: "PAGE2"}},
		{
			"incoming signal",
			"IncomingSignalInfo 3840x2160 23.976p 2D 422 10bit HDR10 2020 TV 16:9",
			IncomingSignalInfoMessage{
				Resolution: "3840x2160", FrameRate: "23.976p", SignalType: "2D",
				ColorSpace: "422", BitDepth: "10bit", HDRMode: "HDR10",
				Colorimetry: "2020", BlackLevels: "TV", AspectRatio: "16:9",
			},
		},
		{
			"outgoing signal",
			"OutgoingSignalInfo 4096x2160 23.976p 2D 444 12bit HDR10 2020 TV",
			OutgoingSignalInfoMessage{
				Resolution: "4096x2160", FrameRate: "23.976p", SignalType: "2D",
				ColorSpace: "444", BitDepth: "12bit", HDRMode: "HDR10",
				Colorimetry: "2020", BlackLevels: "TV",
			},
		},
		{
			"aspect ratio",
			`AspectRatio 3840:1600 2.400 240 "Scope"`,
			AspectRatioMessage{Resolution: "3840:1600", DecimalRatio: 2.4, IntegerRatio: 240, Name: "Scope"},
		},
		{
			"masking ratio",
			"MaskingRatio 3840:1600 2.400 240",
			MaskingRatioMessage{Resolution: "3840:1600", DecimalRatio: 2.4, IntegerRatio: 240},
		},
		{
			"temperatures",
			"Temperatures 55 48 51 42",
			TemperaturesMessage{GPU: 55, HDMIInput: 48, CPU: 51, Mainboard: 42},
		},
		{
			"temperatures extra",
			"Temperatures 55 48 51 42 39",
			TemperaturesMessage{GPU: 55, HDMIInput: 48, CPU: 51, Mainboard: 42, Extra: []int{39}},
		},
		{"mac", "MacAddress 00:1A:2B:3C:4D:5E", MacAddressMessage{MAC: "00:1A:2B:3C:4D:5E"}},
		{"group end", "ProfileGroup.", ProfileGroupEndMessage{}},
		{"group item", `ProfileGroup GRP1 "Living Room"`, ProfileGroupMessage{GroupID: "GRP1", Name: "Living Room"}},
		{"profile end", "Profile.", ProfileEndMessage{}},
		{"profile item", "Profile SOURCE_1 AppleTV", ProfileMessage{ProfileID: "SOURCE_1", Name: "AppleTV"}},
		{"setting page end", "SettingPage.", SettingPageEndMessage{}},
		{"setting page", `SettingPage PAGE1 "HDR Settings"`, SettingPageMessage{PageID: "PAGE1", Name: "HDR Settings"}},
		{"config page end", "ConfigPage.", ConfigPageEndMessage{}},
		{"config page", "ConfigPage CFG1 Display", ConfigPageMessage{PageID: "CFG1", Name: "Display"}},
		{"option end", "Option.", OptionEndMessage{}},
		{
			"option int",
			"Option INTEGER hdrNits 800 820",
			OptionMessage{OptionType: "INTEGER", OptionID: "hdrNits", CurrentValue: Int(800), EffectiveValue: Int(820)},
		},
		{
			"change option bool",
			"ChangeOption BOOLEAN toneMap YES YES",
			ChangeOptionMessage{OptionType: "BOOLEAN", OptionIDPath: "toneMap", CurrentValue: Bool(true), EffectiveValue: Bool(true)},
		},
		{
			"inherit option",
			"InheritOption FLOAT gamma 2.4",
			InheritOptionMessage{OptionType: "FLOAT", OptionIDPath: "gamma", EffectiveValue: Float(2.4)},
		},
		{"reset temporary", "ResetTemporary", ResetTemporaryMessage{}},
		{"lut upload", `Upload3DLUTFile "my lut.3dlut"`, Upload3DLUTFileMessage{Filename: "my lut.3dlut"}},
		{"lut rename", `Rename3DLUTFile old.3dlut new.3dlut`, Rename3DLUTFileMessage{OldFilename: "old.3dlut", NewFilename: "new.3dlut"}},
		{"lut delete", "Delete3DLUTFile old.3dlut", Delete3DLUTFileMessage{Filename: "old.3dlut"}},
		{"settings upload", "UploadSettingsFile", UploadSettingsFileMessage{}},
		{"store settings", `StoreSettings USB "backup 1"`, StoreSettingsMessage{Target: "USB", StorageName: "backup 1"}},
		{"restore settings", "RestoreSettings USB", RestoreSettingsMessage{Target: "USB"}},
		{"toggle", "Toggle ToneMap", ToggleMessage{Option: "ToneMap"}},
		{"tone map on", "ToneMapOn", ToneMapOnMessage{}},
		{"tone map off", "ToneMapOff", ToneMapOffMessage{}},
		{"display changed", "DisplayChanged", DisplayChangedMessage{}},
		{"refresh license", "RefreshLicenseInfo", RefreshLicenseInfoMessage{}},
		{"force 1080p", "Force1080p60Output", Force1080p60OutputMessage{}},
		{"hotplug", "Hotplug", HotplugMessage{}},
		{"firmware update", "FirmwareUpdate", FirmwareUpdateMessage{}},
		{"missing heartbeat", "MissingHeartbeat", MissingHeartbeatMessage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseNeverFails(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"NoSuchKeyword a b c",
		"ERROR",
		"KeyPress",
		"KeyPress MENU EXTRA",
		"ActivateProfile SOURCE notanumber",
		"Temperatures 55 48",
		"Temperatures 55 48 x 42",
		"MacAddress nonsense",
		"MacAddress 00:1A:2B:3C:4D",
		"Option INTEGER hdrNits 800",
		"AspectRatio 3840:1600 notafloat 240 Scope",
		`"unterminated quote`,
		// End markers are bare keywords; trailing fields must not
		// terminate an open enumeration.
		"ProfileGroup. junk",
		"Profile. junk",
		"SettingPage. junk",
		"ConfigPage. junk",
		"Option. junk",
	}
	for _, line := range lines {
		msg := Parse(line)
		unknown, ok := msg.(UnknownMessage)
		if !ok {
			t.Errorf("Parse(%q) = %T, want UnknownMessage", line, msg)
			continue
		}
		if unknown.Raw != line {
			t.Errorf("Parse(%q) raw = %q", line, unknown.Raw)
		}
	}
}

func TestParseCRLFAndPadding(t *testing.T) {
	msg := Parse("  OK \r\n")
	if _, ok := msg.(OKMessage); !ok {
		t.Fatalf("padded OK parsed as %T", msg)
	}
}

func TestTokenizeQuotedRuns(t *testing.T) {
	got := tokenize(`OpenMenu "Test Patterns" extra`)
	want := []string{"OpenMenu", `"Test Patterns"`, "extra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %#v, want %#v", got, want)
	}
}

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		optionType string
		value      Scalar
	}{
		{"INTEGER", Int(800)},
		{"INT", Int(-3)},
		{"FLOAT", Float(2.4)},
		{"DOUBLE", Float(0.5)},
		{"BOOLEAN", Bool(true)},
		{"BOOL", Bool(false)},
		{"STRING", String("plain")},
	}
	for _, tt := range tests {
		got := parseScalar(tt.optionType, tt.value.Render())
		if got != tt.value {
			t.Errorf("parseScalar(%s, %q) = %#v, want %#v",
				tt.optionType, tt.value.Render(), got, tt.value)
		}
	}
}

func TestScalarFallbackToString(t *testing.T) {
	got := parseScalar("INTEGER", "notanumber")
	if got != String("notanumber") {
		t.Errorf("malformed int should fall back to string, got %#v", got)
	}
}

func TestBuildCommandQuoting(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Heartbeat", nil, "Heartbeat"},
		{"OpenMenu", []string{"Settings"}, "OpenMenu Settings"},
		{"DisplayMessage", []string{"5", "Now Playing"}, `DisplayMessage 5 "Now Playing"`},
		{"OpenMenu", []string{`"Already Quoted"`}, `OpenMenu "Already Quoted"`},
	}
	for _, tt := range tests {
		if got := BuildCommand(tt.name, tt.args...); got != tt.want {
			t.Errorf("BuildCommand(%s, %v) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

// Built command lines that double as notifications must survive a
// parse round trip.
func TestBuildParseRoundTrip(t *testing.T) {
	line := BuildCommand("OpenMenu", "Test Patterns")
	msg := Parse(line)
	open, ok := msg.(OpenMenuMessage)
	if !ok {
		t.Fatalf("round trip parsed as %T", msg)
	}
	if open.Menu != "Test Patterns" {
		t.Errorf("menu = %q, want Test Patterns", open.Menu)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("WELCOME to Envy v1.8.7.9")
	f.Add("OK")
	f.Add(`ERROR "bad"`)
	f.Add("Option INTEGER a 1 2")
	f.Add(`OpenMenu "Test Patterns"`)
	f.Add("Temperatures 1 2 3 4 5")
	f.Fuzz(func(t *testing.T, line string) {
		msg := Parse(line)
		if msg == nil {
			t.Fatal("Parse returned nil")
		}
		_ = msg.Kind().String()
	})
}
