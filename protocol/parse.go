package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

const welcomePrefix = "WELCOME to Envy v"

var macPattern = regexp.MustCompile(`^[0-9A-Fa-f:-]{17}$`)

// Parse decodes one line from the Envy stream into a typed Message.
// Parse is total: unrecognized keywords, wrong arity, and malformed
// numeric fields all yield UnknownMessage carrying the raw line.
func Parse(line string) Message {
	normalized := strings.TrimSpace(line)
	if normalized == "" {
		return UnknownMessage{Raw: line}
	}

	if strings.HasPrefix(normalized, welcomePrefix) {
		version := normalized[len(welcomePrefix):]
		if version == "" || strings.ContainsAny(version, " \t") {
			return UnknownMessage{Raw: line}
		}
		return WelcomeMessage{Version: version}
	}

	tokens := tokenize(normalized)
	head := tokens[0]

	switch head {
	case "OK":
		return OKMessage{}
	case "ERROR":
		return parseError(normalized, line)
	case "Standby":
		return StandbyMessage{}
	case "PowerOff":
		return PowerOffMessage{}
	case "Restart":
		return RestartMessage{}
	case "ReloadSoftware":
		return ReloadSoftwareMessage{}
	case "NoSignal":
		return NoSignalMessage{}
	case "OpenMenu":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return OpenMenuMessage{Menu: unquote(tokens[1])}
	case "CloseMenu":
		return CloseMenuMessage{}
	case "KeyPress":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return KeyPressMessage{Button: tokens[1]}
	case "KeyHold":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return KeyHoldMessage{Button: tokens[1]}
	case "SetAspectRatioMode":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return SetAspectRatioModeMessage{Mode: tokens[1]}
	case "ActivateProfile", "ActiveProfile":
		return parseProfileRef(head, tokens, line)
	case "CreateProfileGroup":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return CreateProfileGroupMessage{GroupID: tokens[1], Name: joinName(tokens[2:])}
	case "RenameProfileGroup":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return RenameProfileGroupMessage{GroupID: tokens[1], Name: joinName(tokens[2:])}
	case "DeleteProfileGroup":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return DeleteProfileGroupMessage{GroupID: tokens[1]}
	case "CreateProfile", "RenameProfile", "DeleteProfile":
		return parseProfileChange(head, tokens, line)
	case "AddProfileToPage":
		if len(tokens) != 3 {
			return UnknownMessage{Raw: line}
		}
		return AddProfileToPageMessage{ProfileID: tokens[1], PageID: tokens[2]}
	case "RemoveProfileFromPage":
		if len(tokens) != 3 {
			return UnknownMessage{Raw: line}
		}
		return RemoveProfileFromPageMessage{ProfileID: tokens[1], PageID: tokens[2]}
	case "IncomingSignalInfo":
		return parseIncomingSignal(tokens, line)
	case "OutgoingSignalInfo":
		return parseOutgoingSignal(tokens, line)
	case "AspectRatio":
		return parseAspectRatio(tokens, line)
	case "MaskingRatio":
		return parseMaskingRatio(tokens, line)
	case "Temperatures":
		return parseTemperatures(tokens, line)
	case "MacAddress":
		if len(tokens) != 2 || !macPattern.MatchString(tokens[1]) {
			return UnknownMessage{Raw: line}
		}
		return MacAddressMessage{MAC: tokens[1]}
	case "ProfileGroup.":
		if len(tokens) != 1 {
			return UnknownMessage{Raw: line}
		}
		return ProfileGroupEndMessage{}
	case "ProfileGroup":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return ProfileGroupMessage{GroupID: tokens[1], Name: joinName(tokens[2:])}
	case "Profile.":
		if len(tokens) != 1 {
			return UnknownMessage{Raw: line}
		}
		return ProfileEndMessage{}
	case "Profile":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return ProfileMessage{ProfileID: tokens[1], Name: joinName(tokens[2:])}
	case "SettingPage.":
		if len(tokens) != 1 {
			return UnknownMessage{Raw: line}
		}
		return SettingPageEndMessage{}
	case "SettingPage":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return SettingPageMessage{PageID: tokens[1], Name: joinName(tokens[2:])}
	case "ConfigPage.":
		if len(tokens) != 1 {
			return UnknownMessage{Raw: line}
		}
		return ConfigPageEndMessage{}
	case "ConfigPage":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return ConfigPageMessage{PageID: tokens[1], Name: joinName(tokens[2:])}
	case "Option.":
		if len(tokens) != 1 {
			return UnknownMessage{Raw: line}
		}
		return OptionEndMessage{}
	case "Option":
		if len(tokens) != 5 {
			return UnknownMessage{Raw: line}
		}
		return OptionMessage{
			OptionType:     tokens[1],
			OptionID:       tokens[2],
			CurrentValue:   parseScalar(tokens[1], tokens[3]),
			EffectiveValue: parseScalar(tokens[1], tokens[4]),
		}
	case "ChangeOption":
		if len(tokens) != 5 {
			return UnknownMessage{Raw: line}
		}
		return ChangeOptionMessage{
			OptionType:     tokens[1],
			OptionIDPath:   tokens[2],
			CurrentValue:   parseScalar(tokens[1], tokens[3]),
			EffectiveValue: parseScalar(tokens[1], tokens[4]),
		}
	case "InheritOption":
		if len(tokens) != 4 {
			return UnknownMessage{Raw: line}
		}
		return InheritOptionMessage{
			OptionType:     tokens[1],
			OptionIDPath:   tokens[2],
			EffectiveValue: parseScalar(tokens[1], tokens[3]),
		}
	case "ResetTemporary":
		return ResetTemporaryMessage{}
	case "Upload3DLUTFile":
		if len(tokens) < 2 {
			return UnknownMessage{Raw: line}
		}
		return Upload3DLUTFileMessage{Filename: joinName(tokens[1:])}
	case "Rename3DLUTFile":
		if len(tokens) != 3 {
			return UnknownMessage{Raw: line}
		}
		return Rename3DLUTFileMessage{OldFilename: unquote(tokens[1]), NewFilename: unquote(tokens[2])}
	case "Delete3DLUTFile":
		if len(tokens) < 2 {
			return UnknownMessage{Raw: line}
		}
		return Delete3DLUTFileMessage{Filename: joinName(tokens[1:])}
	case "UploadSettingsFile":
		return UploadSettingsFileMessage{}
	case "StoreSettings":
		if len(tokens) < 3 {
			return UnknownMessage{Raw: line}
		}
		return StoreSettingsMessage{Target: tokens[1], StorageName: joinName(tokens[2:])}
	case "RestoreSettings":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return RestoreSettingsMessage{Target: tokens[1]}
	case "Toggle":
		if len(tokens) != 2 {
			return UnknownMessage{Raw: line}
		}
		return ToggleMessage{Option: tokens[1]}
	case "ToneMapOn":
		return ToneMapOnMessage{}
	case "ToneMapOff":
		return ToneMapOffMessage{}
	case "DisplayChanged":
		return DisplayChangedMessage{}
	case "RefreshLicenseInfo":
		return RefreshLicenseInfoMessage{}
	case "Force1080p60Output":
		return Force1080p60OutputMessage{}
	case "Hotplug":
		return HotplugMessage{}
	case "FirmwareUpdate":
		return FirmwareUpdateMessage{}
	case "MissingHeartbeat":
		return MissingHeartbeatMessage{}
	}

	return UnknownMessage{Raw: line}
}

// tokenize splits a line on whitespace, keeping double-quoted runs as
// single tokens (quotes included; unquote strips them later).
func tokenize(line string) []string {
	var tokens []string
	i := 0
	for i < len(line) {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				tokens = append(tokens, line[i:])
				return tokens
			}
			tokens = append(tokens, line[i:i+end+2])
			i += end + 2
		default:
			end := strings.IndexAny(line[i:], " \t")
			if end < 0 {
				tokens = append(tokens, line[i:])
				return tokens
			}
			tokens = append(tokens, line[i:i+end])
			i += end
		}
	}
	return tokens
}

func unquote(token string) string {
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return token[1 : len(token)-1]
	}
	return token
}

// joinName reassembles a trailing free-text field from its tokens and
// strips one level of surrounding quotes.
func joinName(tokens []string) string {
	return unquote(strings.Join(tokens, " "))
}

func parseError(normalized, line string) Message {
	rest, ok := strings.CutPrefix(normalized, "ERROR")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return UnknownMessage{Raw: line}
	}
	reason := strings.TrimLeft(rest, " \t")
	reason = strings.TrimPrefix(reason, `"`)
	reason = strings.TrimSuffix(reason, `"`)
	return ErrorMessage{Reason: reason}
}

func parseProfileRef(head string, tokens []string, line string) Message {
	if len(tokens) != 3 {
		return UnknownMessage{Raw: line}
	}
	index, err := strconv.Atoi(tokens[2])
	if err != nil {
		return UnknownMessage{Raw: line}
	}
	if head == "ActivateProfile" {
		return ActivateProfileMessage{ProfileGroup: tokens[1], ProfileIndex: index}
	}
	return ActiveProfileMessage{ProfileGroup: tokens[1], ProfileIndex: index}
}

func parseProfileChange(head string, tokens []string, line string) Message {
	if len(tokens) < 3 {
		return UnknownMessage{Raw: line}
	}
	index, err := strconv.Atoi(tokens[2])
	if err != nil {
		return UnknownMessage{Raw: line}
	}

	if head == "DeleteProfile" {
		return DeleteProfileMessage{ProfileGroup: tokens[1], ProfileIndex: index}
	}

	if len(tokens) < 4 {
		return UnknownMessage{Raw: line}
	}
	name := joinName(tokens[3:])
	if head == "CreateProfile" {
		return CreateProfileMessage{ProfileGroup: tokens[1], ProfileIndex: index, Name: name}
	}
	return RenameProfileMessage{ProfileGroup: tokens[1], ProfileIndex: index, Name: name}
}

func parseIncomingSignal(tokens []string, line string) Message {
	if len(tokens) < 10 {
		return UnknownMessage{Raw: line}
	}
	return IncomingSignalInfoMessage{
		Resolution:  tokens[1],
		FrameRate:   tokens[2],
		SignalType:  tokens[3],
		ColorSpace:  tokens[4],
		BitDepth:    tokens[5],
		HDRMode:     tokens[6],
		Colorimetry: tokens[7],
		BlackLevels: tokens[8],
		AspectRatio: tokens[9],
	}
}

func parseOutgoingSignal(tokens []string, line string) Message {
	if len(tokens) < 9 {
		return UnknownMessage{Raw: line}
	}
	return OutgoingSignalInfoMessage{
		Resolution:  tokens[1],
		FrameRate:   tokens[2],
		SignalType:  tokens[3],
		ColorSpace:  tokens[4],
		BitDepth:    tokens[5],
		HDRMode:     tokens[6],
		Colorimetry: tokens[7],
		BlackLevels: tokens[8],
	}
}

func parseAspectRatio(tokens []string, line string) Message {
	if len(tokens) < 5 {
		return UnknownMessage{Raw: line}
	}
	decimal, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return UnknownMessage{Raw: line}
	}
	integer, err := strconv.Atoi(tokens[3])
	if err != nil {
		return UnknownMessage{Raw: line}
	}
	return AspectRatioMessage{
		Resolution:   tokens[1],
		DecimalRatio: decimal,
		IntegerRatio: integer,
		Name:         joinName(tokens[4:]),
	}
}

func parseMaskingRatio(tokens []string, line string) Message {
	if len(tokens) != 4 {
		return UnknownMessage{Raw: line}
	}
	decimal, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return UnknownMessage{Raw: line}
	}
	integer, err := strconv.Atoi(tokens[3])
	if err != nil {
		return UnknownMessage{Raw: line}
	}
	return MaskingRatioMessage{
		Resolution:   tokens[1],
		DecimalRatio: decimal,
		IntegerRatio: integer,
	}
}

func parseTemperatures(tokens []string, line string) Message {
	if len(tokens) < 5 {
		return UnknownMessage{Raw: line}
	}
	values := make([]int, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		v, err := strconv.Atoi(token)
		if err != nil {
			return UnknownMessage{Raw: line}
		}
		values = append(values, v)
	}
	msg := TemperaturesMessage{
		GPU:       values[0],
		HDMIInput: values[1],
		CPU:       values[2],
		Mainboard: values[3],
	}
	if len(values) > 4 {
		msg.Extra = values[4:]
	}
	return msg
}
