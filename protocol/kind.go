package protocol

import "fmt"

// Kind identifies a message variant. Every Message reports exactly one
// Kind; the client uses it to route notifications to enumeration
// sessions and reply-style acknowledgements to pending commands.
type Kind int

const (
	// KindUnknown is the fallback for unrecognized or malformed lines.
	KindUnknown Kind = iota

	// Connection and acknowledgement kinds.
	KindWelcome
	KindOK
	KindError

	// Power and system event kinds.
	KindStandby
	KindPowerOff
	KindRestart
	KindReloadSoftware
	KindDisplayChanged
	KindRefreshLicenseInfo
	KindForce1080p60Output
	KindHotplug
	KindFirmwareUpdate
	KindMissingHeartbeat

	// Signal and aspect kinds.
	KindNoSignal
	KindIncomingSignalInfo
	KindOutgoingSignalInfo
	KindAspectRatio
	KindMaskingRatio
	KindSetAspectRatioMode
	KindTemperatures
	KindMacAddress

	// Menu and remote-control kinds.
	KindOpenMenu
	KindCloseMenu
	KindKeyPress
	KindKeyHold

	// Profile lifecycle kinds.
	KindActivateProfile
	KindActiveProfile
	KindCreateProfileGroup
	KindRenameProfileGroup
	KindDeleteProfileGroup
	KindCreateProfile
	KindRenameProfile
	KindDeleteProfile
	KindAddProfileToPage
	KindRemoveProfileFromPage

	// Enumeration item and end-marker kinds.
	KindProfileGroup
	KindProfileGroupEnd
	KindProfile
	KindProfileEnd
	KindSettingPage
	KindSettingPageEnd
	KindConfigPage
	KindConfigPageEnd
	KindOption
	KindOptionEnd

	// Option and settings-store kinds.
	KindChangeOption
	KindInheritOption
	KindResetTemporary
	KindToggle
	KindToneMapOn
	KindToneMapOff
	KindUpload3DLUTFile
	KindRename3DLUTFile
	KindDelete3DLUTFile
	KindUploadSettingsFile
	KindStoreSettings
	KindRestoreSettings
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindWelcome:               "Welcome",
	KindOK:                    "OK",
	KindError:                 "Error",
	KindStandby:               "Standby",
	KindPowerOff:              "PowerOff",
	KindRestart:               "Restart",
	KindReloadSoftware:        "ReloadSoftware",
	KindDisplayChanged:        "DisplayChanged",
	KindRefreshLicenseInfo:    "RefreshLicenseInfo",
	KindForce1080p60Output:    "Force1080p60Output",
	KindHotplug:               "Hotplug",
	KindFirmwareUpdate:        "FirmwareUpdate",
	KindMissingHeartbeat:      "MissingHeartbeat",
	KindNoSignal:              "NoSignal",
	KindIncomingSignalInfo:    "IncomingSignalInfo",
	KindOutgoingSignalInfo:    "OutgoingSignalInfo",
	KindAspectRatio:           "AspectRatio",
	KindMaskingRatio:          "MaskingRatio",
	KindSetAspectRatioMode:    "SetAspectRatioMode",
	KindTemperatures:          "Temperatures",
	KindMacAddress:            "MacAddress",
	KindOpenMenu:              "OpenMenu",
	KindCloseMenu:             "CloseMenu",
	KindKeyPress:              "KeyPress",
	KindKeyHold:               "KeyHold",
	KindActivateProfile:       "ActivateProfile",
	KindActiveProfile:         "ActiveProfile",
	KindCreateProfileGroup:    "CreateProfileGroup",
	KindRenameProfileGroup:    "RenameProfileGroup",
	KindDeleteProfileGroup:    "DeleteProfileGroup",
	KindCreateProfile:         "CreateProfile",
	KindRenameProfile:         "RenameProfile",
	KindDeleteProfile:         "DeleteProfile",
	KindAddProfileToPage:      "AddProfileToPage",
	KindRemoveProfileFromPage: "RemoveProfileFromPage",
	KindProfileGroup:          "ProfileGroup",
	KindProfileGroupEnd:       "ProfileGroupEnd",
	KindProfile:               "Profile",
	KindProfileEnd:            "ProfileEnd",
	KindSettingPage:           "SettingPage",
	KindSettingPageEnd:        "SettingPageEnd",
	KindConfigPage:            "ConfigPage",
	KindConfigPageEnd:         "ConfigPageEnd",
	KindOption:                "Option",
	KindOptionEnd:             "OptionEnd",
	KindChangeOption:          "ChangeOption",
	KindInheritOption:         "InheritOption",
	KindResetTemporary:        "ResetTemporary",
	KindToggle:                "Toggle",
	KindToneMapOn:             "ToneMapOn",
	KindToneMapOff:            "ToneMapOff",
	KindUpload3DLUTFile:       "Upload3DLUTFile",
	KindRename3DLUTFile:       "Rename3DLUTFile",
	KindDelete3DLUTFile:       "Delete3DLUTFile",
	KindUploadSettingsFile:    "UploadSettingsFile",
	KindStoreSettings:         "StoreSettings",
	KindRestoreSettings:       "RestoreSettings",
}

// String returns the variant name for logging and diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
