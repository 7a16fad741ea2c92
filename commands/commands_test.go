package commands

import (
	"testing"

	"github.com/envyctl/go-envy/protocol"
)

func TestBuildersRenderWireLines(t *testing.T) {
	tests := []struct {
		cmd      Command
		wantName string
		wantLine string
	}{
		{Heartbeat(), "Heartbeat", "Heartbeat"},
		{Bye(), "Bye", "Bye"},
		{PowerOff(), "PowerOff", "PowerOff"},
		{Standby(), "Standby", "Standby"},
		{OpenMenu(MenuTestPatterns), "OpenMenu", "OpenMenu TestPatterns"},
		{CloseMenu(), "CloseMenu", "CloseMenu"},
		{KeyPress(ButtonMenu), "KeyPress", "KeyPress MENU"},
		{KeyHold(ButtonPower), "KeyHold", "KeyHold POWER"},
		{DisplayMessage(5, "Now Playing"), "DisplayMessage", `DisplayMessage 5 "Now Playing"`},
		{DisplayAlertWindow("Check input"), "DisplayAlertWindow", `DisplayAlertWindow "Check input"`},
		{CloseAlertWindow(), "CloseAlertWindow", "CloseAlertWindow"},
		{DisplayAudioMute(), "DisplayAudioMute", "DisplayAudioMute"},
		{SetAspectRatioMode(Aspect235), "SetAspectRatioMode", "SetAspectRatioMode 2.35:1"},
		{GetMacAddress(), "GetMacAddress", "GetMacAddress"},
		{GetTemperatures(), "GetTemperatures", "GetTemperatures"},
		{CreateProfileGroup("Living Room"), "CreateProfileGroup", `CreateProfileGroup "Living Room"`},
		{RenameProfile("SOURCE", 1, "Apple TV"), "RenameProfile", `RenameProfile SOURCE 1 "Apple TV"`},
		{DeleteProfile("SOURCE", 1), "DeleteProfile", "DeleteProfile SOURCE 1"},
		{ActivateProfile("SOURCE", 2), "ActivateProfile", "ActivateProfile SOURCE 2"},
		{GetActiveProfile("SOURCE"), "GetActiveProfile", "GetActiveProfile SOURCE"},
		{EnumProfileGroups(), "EnumProfileGroups", "EnumProfileGroups"},
		{EnumProfiles("SOURCE"), "EnumProfiles", "EnumProfiles SOURCE"},
		{EnumSettingPages(), "EnumSettingPages", "EnumSettingPages"},
		{EnumConfigPages(), "EnumConfigPages", "EnumConfigPages"},
		{EnumOptions("PAGE1"), "EnumOptions", "EnumOptions PAGE1"},
		{QueryOption(`hdr\nits`), "QueryOption", `QueryOption hdr\nits`},
		{ChangeOption("hdrNits", protocol.Int(800)), "ChangeOption", "ChangeOption hdrNits 800"},
		{ChangeOption("toneMap", protocol.Bool(true)), "ChangeOption", "ChangeOption toneMap YES"},
		{ChangeOption("gamma", protocol.Float(2.4)), "ChangeOption", "ChangeOption gamma 2.4"},
		{ToggleOption("ToneMap"), "Toggle", "Toggle ToneMap"},
		{ToneMapOn(), "ToneMapOn", "ToneMapOn"},
		{ToneMapOff(), "ToneMapOff", "ToneMapOff"},
		{Hotplug(), "Hotplug", "Hotplug"},
		{RefreshLicenseInfo(), "RefreshLicenseInfo", "RefreshLicenseInfo"},
		{Force1080p60Output(), "Force1080p60Output", "Force1080p60Output"},
	}

	for _, tt := range tests {
		if tt.cmd.Name != tt.wantName {
			t.Errorf("name = %q, want %q", tt.cmd.Name, tt.wantName)
		}
		if tt.cmd.Line != tt.wantLine {
			t.Errorf("line = %q, want %q", tt.cmd.Line, tt.wantLine)
		}
	}
}

func TestDisplayAudioVolumeAlwaysQuotesUnit(t *testing.T) {
	cmd := DisplayAudioVolume(0, 35, 100, "dB")
	if cmd.Line != `DisplayAudioVolume 0 35 100 "dB"` {
		t.Errorf("line = %q", cmd.Line)
	}
	cmd = DisplayAudioVolume(0, 35, 100, `"dB"`)
	if cmd.Line != `DisplayAudioVolume 0 35 100 "dB"` {
		t.Errorf("pre-quoted unit line = %q", cmd.Line)
	}
}

// Echoed command notifications must parse back to their typed message.
func TestCommandLinesParseAsNotifications(t *testing.T) {
	msg := protocol.Parse(ActivateProfile("SOURCE", 2).Line)
	activate, ok := msg.(protocol.ActivateProfileMessage)
	if !ok {
		t.Fatalf("parsed as %T", msg)
	}
	if activate.ProfileGroup != "SOURCE" || activate.ProfileIndex != 2 {
		t.Errorf("parsed = %#v", activate)
	}
}
