package protocol

// Message is one parsed protocol line. The variant set is closed: every
// recognized notification/acknowledgement kind has exactly one concrete
// struct in this package, plus UnknownMessage as the fallback. Variants
// are immutable once constructed.
type Message interface {
	// Kind reports which variant this message is.
	Kind() Kind
}

// UnknownMessage carries a line the parser did not recognize. It is
// still delivered to observers so diagnostics can surface new or
// unhandled protocol lines without disrupting the connection.
type UnknownMessage struct {
	Raw string
}

// WelcomeMessage is the connection greeting carrying the firmware
// version, e.g. "WELCOME to Envy v1.1.3".
type WelcomeMessage struct {
	Version string
}

// OKMessage is the generic positive acknowledgement.
type OKMessage struct{}

// ErrorMessage is the generic negative acknowledgement with the
// device-reported reason.
type ErrorMessage struct {
	Reason string
}

// StandbyMessage reports the device entering standby.
type StandbyMessage struct{}

// PowerOffMessage reports the device powering off.
type PowerOffMessage struct{}

// RestartMessage reports a device restart.
type RestartMessage struct{}

// ReloadSoftwareMessage reports a software reload.
type ReloadSoftwareMessage struct{}

// NoSignalMessage reports loss of the input signal.
type NoSignalMessage struct{}

// OpenMenuMessage reports an on-screen menu being opened.
type OpenMenuMessage struct {
	Menu string
}

// CloseMenuMessage reports the on-screen menu closing.
type CloseMenuMessage struct{}

// KeyPressMessage reports a remote-control button press.
type KeyPressMessage struct {
	Button string
}

// KeyHoldMessage reports a remote-control button hold.
type KeyHoldMessage struct {
	Button string
}

// SetAspectRatioModeMessage reports the aspect ratio mode changing.
type SetAspectRatioModeMessage struct {
	Mode string
}

// ActivateProfileMessage reports a profile activation request.
type ActivateProfileMessage struct {
	ProfileGroup string
	ProfileIndex int
}

// ActiveProfileMessage reports the currently active profile; also the
// reply to GetActiveProfile.
type ActiveProfileMessage struct {
	ProfileGroup string
	ProfileIndex int
}

// CreateProfileGroupMessage reports a profile group being created.
type CreateProfileGroupMessage struct {
	GroupID string
	Name    string
}

// RenameProfileGroupMessage reports a profile group being renamed.
type RenameProfileGroupMessage struct {
	GroupID string
	Name    string
}

// DeleteProfileGroupMessage reports a profile group being deleted.
type DeleteProfileGroupMessage struct {
	GroupID string
}

// CreateProfileMessage reports a profile being created.
type CreateProfileMessage struct {
	ProfileGroup string
	ProfileIndex int
	Name         string
}

// RenameProfileMessage reports a profile being renamed.
type RenameProfileMessage struct {
	ProfileGroup string
	ProfileIndex int
	Name         string
}

// DeleteProfileMessage reports a profile being deleted.
type DeleteProfileMessage struct {
	ProfileGroup string
	ProfileIndex int
}

// AddProfileToPageMessage reports a profile being linked to a page.
type AddProfileToPageMessage struct {
	ProfileID string
	PageID    string
}

// RemoveProfileFromPageMessage reports a profile being unlinked from a
// page.
type RemoveProfileFromPageMessage struct {
	ProfileID string
	PageID    string
}

// IncomingSignalInfoMessage describes the signal on the active input;
// also the reply to GetIncomingSignalInfo.
type IncomingSignalInfoMessage struct {
	Resolution  string
	FrameRate   string
	SignalType  string
	ColorSpace  string
	BitDepth    string
	HDRMode     string
	Colorimetry string
	BlackLevels string
	AspectRatio string
}

// OutgoingSignalInfoMessage describes the signal on the output; also
// the reply to GetOutgoingSignalInfo.
type OutgoingSignalInfoMessage struct {
	Resolution  string
	FrameRate   string
	SignalType  string
	ColorSpace  string
	BitDepth    string
	HDRMode     string
	Colorimetry string
	BlackLevels string
}

// AspectRatioMessage reports the detected content aspect ratio; also
// the reply to GetAspectRatio.
type AspectRatioMessage struct {
	Resolution   string
	DecimalRatio float64
	IntegerRatio int
	Name         string
}

// MaskingRatioMessage reports the screen masking ratio; also the reply
// to GetMaskingRatio.
type MaskingRatioMessage struct {
	Resolution   string
	DecimalRatio float64
	IntegerRatio int
}

// TemperaturesMessage reports component temperatures in degrees
// Celsius; also the reply to GetTemperatures. Extra holds any trailing
// sensor values beyond the four documented ones.
type TemperaturesMessage struct {
	GPU       int
	HDMIInput int
	CPU       int
	Mainboard int
	Extra     []int
}

// MacAddressMessage is the reply to GetMacAddress.
type MacAddressMessage struct {
	MAC string
}

// ProfileGroupMessage is one item in an EnumProfileGroups enumeration.
type ProfileGroupMessage struct {
	GroupID string
	Name    string
}

// ProfileGroupEndMessage ends an EnumProfileGroups enumeration.
type ProfileGroupEndMessage struct{}

// ProfileMessage is one item in an EnumProfiles enumeration.
type ProfileMessage struct {
	ProfileID string
	Name      string
}

// ProfileEndMessage ends an EnumProfiles enumeration.
type ProfileEndMessage struct{}

// SettingPageMessage is one item in an EnumSettingPages enumeration.
type SettingPageMessage struct {
	PageID string
	Name   string
}

// SettingPageEndMessage ends an EnumSettingPages enumeration.
type SettingPageEndMessage struct{}

// ConfigPageMessage is one item in an EnumConfigPages enumeration.
type ConfigPageMessage struct {
	PageID string
	Name   string
}

// ConfigPageEndMessage ends an EnumConfigPages enumeration.
type ConfigPageEndMessage struct{}

// OptionMessage is one item in an EnumOptions enumeration or the reply
// to QueryOption. OptionID is the hierarchical, backslash-separated
// option path.
type OptionMessage struct {
	OptionType     string
	OptionID       string
	CurrentValue   Scalar
	EffectiveValue Scalar
}

// OptionEndMessage ends an EnumOptions enumeration.
type OptionEndMessage struct{}

// ChangeOptionMessage reports an option value changing.
type ChangeOptionMessage struct {
	OptionType     string
	OptionIDPath   string
	CurrentValue   Scalar
	EffectiveValue Scalar
}

// InheritOptionMessage reports an option reverting to its inherited
// value.
type InheritOptionMessage struct {
	OptionType     string
	OptionIDPath   string
	EffectiveValue Scalar
}

// ResetTemporaryMessage reports the temporary option namespace being
// reset.
type ResetTemporaryMessage struct{}

// Upload3DLUTFileMessage reports a 3D LUT file upload completing.
type Upload3DLUTFileMessage struct {
	Filename string
}

// Rename3DLUTFileMessage reports a 3D LUT file being renamed.
type Rename3DLUTFileMessage struct {
	OldFilename string
	NewFilename string
}

// Delete3DLUTFileMessage reports a 3D LUT file being deleted.
type Delete3DLUTFileMessage struct {
	Filename string
}

// UploadSettingsFileMessage reports a settings file upload completing.
type UploadSettingsFileMessage struct{}

// StoreSettingsMessage reports settings being stored to a named slot.
type StoreSettingsMessage struct {
	Target      string
	StorageName string
}

// RestoreSettingsMessage reports settings being restored.
type RestoreSettingsMessage struct {
	Target string
}

// ToggleMessage reports a named option being toggled.
type ToggleMessage struct {
	Option string
}

// ToneMapOnMessage reports tone mapping being enabled.
type ToneMapOnMessage struct{}

// ToneMapOffMessage reports tone mapping being disabled.
type ToneMapOffMessage struct{}

// DisplayChangedMessage reports the attached display changing.
type DisplayChangedMessage struct{}

// RefreshLicenseInfoMessage reports the license info being refreshed.
type RefreshLicenseInfoMessage struct{}

// Force1080p60OutputMessage reports the output being forced to
// 1080p60.
type Force1080p60OutputMessage struct{}

// HotplugMessage reports an HDMI hotplug being issued.
type HotplugMessage struct{}

// FirmwareUpdateMessage reports a firmware update becoming pending.
type FirmwareUpdateMessage struct{}

// MissingHeartbeatMessage is the device-side warning that precedes a
// disconnect when the client stops sending Heartbeat commands.
type MissingHeartbeatMessage struct{}

func (UnknownMessage) Kind() Kind               { return KindUnknown }
func (WelcomeMessage) Kind() Kind               { return KindWelcome }
func (OKMessage) Kind() Kind                    { return KindOK }
func (ErrorMessage) Kind() Kind                 { return KindError }
func (StandbyMessage) Kind() Kind               { return KindStandby }
func (PowerOffMessage) Kind() Kind              { return KindPowerOff }
func (RestartMessage) Kind() Kind               { return KindRestart }
func (ReloadSoftwareMessage) Kind() Kind        { return KindReloadSoftware }
func (NoSignalMessage) Kind() Kind              { return KindNoSignal }
func (OpenMenuMessage) Kind() Kind              { return KindOpenMenu }
func (CloseMenuMessage) Kind() Kind             { return KindCloseMenu }
func (KeyPressMessage) Kind() Kind              { return KindKeyPress }
func (KeyHoldMessage) Kind() Kind               { return KindKeyHold }
func (SetAspectRatioModeMessage) Kind() Kind    { return KindSetAspectRatioMode }
func (ActivateProfileMessage) Kind() Kind       { return KindActivateProfile }
func (ActiveProfileMessage) Kind() Kind         { return KindActiveProfile }
func (CreateProfileGroupMessage) Kind() Kind    { return KindCreateProfileGroup }
func (RenameProfileGroupMessage) Kind() Kind    { return KindRenameProfileGroup }
func (DeleteProfileGroupMessage) Kind() Kind    { return KindDeleteProfileGroup }
func (CreateProfileMessage) Kind() Kind         { return KindCreateProfile }
func (RenameProfileMessage) Kind() Kind         { return KindRenameProfile }
func (DeleteProfileMessage) Kind() Kind         { return KindDeleteProfile }
func (AddProfileToPageMessage) Kind() Kind      { return KindAddProfileToPage }
func (RemoveProfileFromPageMessage) Kind() Kind { return KindRemoveProfileFromPage }
func (IncomingSignalInfoMessage) Kind() Kind    { return KindIncomingSignalInfo }
func (OutgoingSignalInfoMessage) Kind() Kind    { return KindOutgoingSignalInfo }
func (AspectRatioMessage) Kind() Kind           { return KindAspectRatio }
func (MaskingRatioMessage) Kind() Kind          { return KindMaskingRatio }
func (TemperaturesMessage) Kind() Kind          { return KindTemperatures }
func (MacAddressMessage) Kind() Kind            { return KindMacAddress }
func (ProfileGroupMessage) Kind() Kind          { return KindProfileGroup }
func (ProfileGroupEndMessage) Kind() Kind       { return KindProfileGroupEnd }
func (ProfileMessage) Kind() Kind               { return KindProfile }
func (ProfileEndMessage) Kind() Kind            { return KindProfileEnd }
func (SettingPageMessage) Kind() Kind           { return KindSettingPage }
func (SettingPageEndMessage) Kind() Kind        { return KindSettingPageEnd }
func (ConfigPageMessage) Kind() Kind            { return KindConfigPage }
func (ConfigPageEndMessage) Kind() Kind         { return KindConfigPageEnd }
func (OptionMessage) Kind() Kind                { return KindOption }
func (OptionEndMessage) Kind() Kind             { return KindOptionEnd }
func (ChangeOptionMessage) Kind() Kind          { return KindChangeOption }
func (InheritOptionMessage) Kind() Kind         { return KindInheritOption }
func (ResetTemporaryMessage) Kind() Kind        { return KindResetTemporary }
func (Upload3DLUTFileMessage) Kind() Kind       { return KindUpload3DLUTFile }
func (Rename3DLUTFileMessage) Kind() Kind       { return KindRename3DLUTFile }
func (Delete3DLUTFileMessage) Kind() Kind       { return KindDelete3DLUTFile }
func (UploadSettingsFileMessage) Kind() Kind    { return KindUploadSettingsFile }
func (StoreSettingsMessage) Kind() Kind         { return KindStoreSettings }
func (RestoreSettingsMessage) Kind() Kind       { return KindRestoreSettings }
func (ToggleMessage) Kind() Kind                { return KindToggle }
func (ToneMapOnMessage) Kind() Kind             { return KindToneMapOn }
func (ToneMapOffMessage) Kind() Kind            { return KindToneMapOff }
func (DisplayChangedMessage) Kind() Kind        { return KindDisplayChanged }
func (RefreshLicenseInfoMessage) Kind() Kind    { return KindRefreshLicenseInfo }
func (Force1080p60OutputMessage) Kind() Kind    { return KindForce1080p60Output }
func (HotplugMessage) Kind() Kind               { return KindHotplug }
func (FirmwareUpdateMessage) Kind() Kind        { return KindFirmwareUpdate }
func (MissingHeartbeatMessage) Kind() Kind      { return KindMissingHeartbeat }
