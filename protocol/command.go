package protocol

import "strings"

// QuoteIfNeeded wraps a command parameter in double quotes when the
// protocol syntax requires it (the value contains a space and is not
// already quoted).
func QuoteIfNeeded(value string) string {
	if strings.Contains(value, " ") &&
		!(strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) {
		return `"` + value + `"`
	}
	return value
}

// BuildCommand renders one protocol command line without the line
// terminator. Arguments are quoted as needed; numeric arguments should
// be pre-rendered by the caller (see Scalar.Render).
func BuildCommand(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		parts = append(parts, QuoteIfNeeded(arg))
	}
	return strings.Join(parts, " ")
}
