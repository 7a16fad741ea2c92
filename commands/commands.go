// Package commands provides typed constructors for every Envy
// IP-control command. Each constructor returns a Command carrying the
// leading keyword (the correlation kind) and the rendered wire line;
// the client sends these opaquely and correlates acknowledgements by
// keyword.
package commands

import (
	"strconv"

	"github.com/envyctl/go-envy/protocol"
)

// Command is one outbound command ready for dispatch.
type Command struct {
	// Name is the leading keyword. Acknowledgement correlation is
	// FIFO per Name.
	Name string
	// Line is the full wire line without the terminator.
	Line string
}

func build(name string, args ...string) Command {
	return Command{Name: name, Line: protocol.BuildCommand(name, args...)}
}

// MenuName is an on-screen menu identifier accepted by OpenMenu.
type MenuName string

// Menus the device knows how to open.
const (
	MenuInfo          MenuName = "Info"
	MenuSettings      MenuName = "Settings"
	MenuConfiguration MenuName = "Configuration"
	MenuProfiles      MenuName = "Profiles"
	MenuTestPatterns  MenuName = "TestPatterns"
)

// RemoteButton is a remote-control button identifier for KeyPress and
// KeyHold.
type RemoteButton string

// Remote-control buttons.
const (
	ButtonPower    RemoteButton = "POWER"
	ButtonInfo     RemoteButton = "INFO"
	ButtonMenu     RemoteButton = "MENU"
	ButtonLeft     RemoteButton = "LEFT"
	ButtonRight    RemoteButton = "RIGHT"
	ButtonUp       RemoteButton = "UP"
	ButtonDown     RemoteButton = "DOWN"
	ButtonOK       RemoteButton = "OK"
	ButtonInput    RemoteButton = "INPUT"
	ButtonSettings RemoteButton = "SETTINGS"
	ButtonBack     RemoteButton = "BACK"
	ButtonRed      RemoteButton = "RED"
	ButtonGreen    RemoteButton = "GREEN"
	ButtonBlue     RemoteButton = "BLUE"
	ButtonYellow   RemoteButton = "YELLOW"
	ButtonMagenta  RemoteButton = "MAGENTA"
	ButtonCyan     RemoteButton = "CYAN"
)

// AspectRatioMode is a value accepted by SetAspectRatioMode.
type AspectRatioMode string

// Aspect ratio modes.
const (
	AspectAuto AspectRatioMode = "Auto"
	AspectHold AspectRatioMode = "Hold"
	Aspect43   AspectRatioMode = "4:3"
	Aspect169  AspectRatioMode = "16:9"
	Aspect185  AspectRatioMode = "1.85:1"
	Aspect200  AspectRatioMode = "2.00:1"
	Aspect220  AspectRatioMode = "2.20:1"
	Aspect235  AspectRatioMode = "2.35:1"
	Aspect240  AspectRatioMode = "2.40:1"
	Aspect255  AspectRatioMode = "2.55:1"
	Aspect276  AspectRatioMode = "2.76:1"
)

// Heartbeat keeps the session alive; the device drops clients that
// stop sending it.
func Heartbeat() Command { return build("Heartbeat") }

// Bye announces a clean disconnect.
func Bye() Command { return build("Bye") }

// PowerOff powers the device down.
func PowerOff() Command { return build("PowerOff") }

// Standby puts the device into standby.
func Standby() Command { return build("Standby") }

// Restart restarts the device.
func Restart() Command { return build("Restart") }

// ReloadSoftware reloads the device software.
func ReloadSoftware() Command { return build("ReloadSoftware") }

// OpenMenu opens an on-screen menu.
func OpenMenu(menu MenuName) Command { return build("OpenMenu", string(menu)) }

// CloseMenu closes the on-screen menu.
func CloseMenu() Command { return build("CloseMenu") }

// KeyPress sends a remote-control button press.
func KeyPress(button RemoteButton) Command { return build("KeyPress", string(button)) }

// KeyHold sends a remote-control button hold.
func KeyHold(button RemoteButton) Command { return build("KeyHold", string(button)) }

// DisplayAlertWindow shows an alert window with the given text.
func DisplayAlertWindow(text string) Command { return build("DisplayAlertWindow", text) }

// CloseAlertWindow dismisses the alert window.
func CloseAlertWindow() Command { return build("CloseAlertWindow") }

// DisplayMessage shows an on-screen message for the given number of
// seconds.
func DisplayMessage(timeoutSeconds int, text string) Command {
	return build("DisplayMessage", strconv.Itoa(timeoutSeconds), text)
}

// DisplayAudioVolume shows the on-screen volume indicator. The unit
// description is always quoted on the wire.
func DisplayAudioVolume(minValue, currentValue, maxValue int, unitDescription string) Command {
	unit := unitDescription
	if !(len(unit) >= 2 && unit[0] == '"' && unit[len(unit)-1] == '"') {
		unit = `"` + unit + `"`
	}
	return build("DisplayAudioVolume",
		strconv.Itoa(minValue), strconv.Itoa(currentValue), strconv.Itoa(maxValue), unit)
}

// DisplayAudioMute shows the on-screen mute indicator.
func DisplayAudioMute() Command { return build("DisplayAudioMute") }

// CloseAudioMute hides the on-screen mute indicator.
func CloseAudioMute() Command { return build("CloseAudioMute") }

// SetAspectRatioMode selects the aspect ratio handling mode.
func SetAspectRatioMode(mode AspectRatioMode) Command {
	return build("SetAspectRatioMode", string(mode))
}

// GetIncomingSignalInfo requests the incoming signal description.
func GetIncomingSignalInfo() Command { return build("GetIncomingSignalInfo") }

// GetOutgoingSignalInfo requests the outgoing signal description.
func GetOutgoingSignalInfo() Command { return build("GetOutgoingSignalInfo") }

// GetAspectRatio requests the detected content aspect ratio.
func GetAspectRatio() Command { return build("GetAspectRatio") }

// GetMaskingRatio requests the screen masking ratio.
func GetMaskingRatio() Command { return build("GetMaskingRatio") }

// GetTemperatures requests component temperatures.
func GetTemperatures() Command { return build("GetTemperatures") }

// GetMacAddress requests the device MAC address.
func GetMacAddress() Command { return build("GetMacAddress") }

// CreateProfileGroup creates a profile group with the given name.
func CreateProfileGroup(name string) Command { return build("CreateProfileGroup", name) }

// RenameProfileGroup renames a profile group.
func RenameProfileGroup(groupID, name string) Command {
	return build("RenameProfileGroup", groupID, name)
}

// DeleteProfileGroup deletes a profile group.
func DeleteProfileGroup(groupID string) Command { return build("DeleteProfileGroup", groupID) }

// EnumProfileGroups starts a profile-group enumeration; items stream
// back as ProfileGroup notifications terminated by "ProfileGroup.".
func EnumProfileGroups() Command { return build("EnumProfileGroups") }

// CreateProfile creates a profile in a group.
func CreateProfile(profileGroup, name string) Command {
	return build("CreateProfile", profileGroup, name)
}

// RenameProfile renames a profile.
func RenameProfile(profileGroup string, profileIndex int, name string) Command {
	return build("RenameProfile", profileGroup, strconv.Itoa(profileIndex), name)
}

// DeleteProfile deletes a profile.
func DeleteProfile(profileGroup string, profileIndex int) Command {
	return build("DeleteProfile", profileGroup, strconv.Itoa(profileIndex))
}

// AddProfileToPage links a profile to a settings page.
func AddProfileToPage(fullProfileID, pageID string) Command {
	return build("AddProfileToPage", fullProfileID, pageID)
}

// RemoveProfileFromPage unlinks a profile from a settings page.
func RemoveProfileFromPage(fullProfileID, pageID string) Command {
	return build("RemoveProfileFromPage", fullProfileID, pageID)
}

// ActivateProfile activates a profile by group and index.
func ActivateProfile(profileGroup string, profileIndex int) Command {
	return build("ActivateProfile", profileGroup, strconv.Itoa(profileIndex))
}

// GetActiveProfile requests the active profile of a group.
func GetActiveProfile(profileGroup string) Command {
	return build("GetActiveProfile", profileGroup)
}

// EnumProfiles starts a profile enumeration for a group; items stream
// back as Profile notifications terminated by "Profile.".
func EnumProfiles(profileGroup string) Command { return build("EnumProfiles", profileGroup) }

// EnumSettingPages starts a setting-page enumeration terminated by
// "SettingPage.".
func EnumSettingPages() Command { return build("EnumSettingPages") }

// EnumConfigPages starts a config-page enumeration terminated by
// "ConfigPage.".
func EnumConfigPages() Command { return build("EnumConfigPages") }

// EnumOptions starts an option enumeration for a page or option path,
// terminated by "Option.".
func EnumOptions(pageOrPath string) Command { return build("EnumOptions", pageOrPath) }

// QueryOption requests a single option value.
func QueryOption(optionIDOrPath string) Command { return build("QueryOption", optionIDOrPath) }

// ChangeOption sets an option value at a hierarchical path.
func ChangeOption(optionIDPath string, value protocol.Scalar) Command {
	return build("ChangeOption", optionIDPath, value.Render())
}

// ToggleOption toggles a named option.
func ToggleOption(optionName string) Command { return build("Toggle", optionName) }

// ToneMapOn enables tone mapping.
func ToneMapOn() Command { return build("ToneMapOn") }

// ToneMapOff disables tone mapping.
func ToneMapOff() Command { return build("ToneMapOff") }

// Hotplug issues an HDMI hotplug.
func Hotplug() Command { return build("Hotplug") }

// RefreshLicenseInfo refreshes the license info.
func RefreshLicenseInfo() Command { return build("RefreshLicenseInfo") }

// Force1080p60Output forces the output to 1080p60.
func Force1080p60Output() Command { return build("Force1080p60Output") }
