// Package protocol implements the madVR Envy IP-control wire codec.
//
// The Envy speaks a line-oriented text protocol over TCP (default port
// 44077). Each command and each notification occupies exactly one
// newline-terminated line. Fields are separated by spaces; a field that
// itself contains spaces is wrapped in double quotes:
//
//	OpenMenu Settings
//	CreateProfileGroup 3 "Movie Night"
//	Option BOOLEAN temporary\hdrNits 120 120
//
// # Messages
//
// Parse turns one raw line into a typed Message variant. The variant set
// is closed: every recognized notification and acknowledgement kind has
// its own struct, and anything the parser does not recognize (unknown
// keyword, wrong field count, malformed numeric field) degrades to
// UnknownMessage carrying the raw line. Parse never returns an error;
// future or malformed protocol lines must not take down the connection.
//
// # Commands
//
// BuildCommand renders one outbound command line (without the line
// terminator). Encoding is deterministic and applies the same quoting
// rules the parser understands, so Parse(BuildCommand(...)) round-trips
// for every command that has a notification counterpart.
//
// # Option values
//
// Option-style notifications carry a type token (INTEGER, FLOAT,
// BOOLEAN, ...) followed by values. Values are decoded into Scalar, a
// small tagged union over string/int/float/bool. Booleans render as
// YES/NO on the wire.
//
// The package is pure: no I/O, no state.
package protocol
