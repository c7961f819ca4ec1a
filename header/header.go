// Package header parses raw header lines delivered by the transfer engine
// into a [Map] of name/value pairs.
package header

import "bytes"

// Map holds response or request headers keyed by name, with the name's
// case preserved as received. A later value for the same name replaces
// the earlier one.
type Map map[string]string

// Clone returns a copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}

	cpy := make(Map, len(m))
	for k, v := range m {
		cpy[k] = v
	}

	return cpy
}

// Parse splits one raw header line into its name and value.
//
// The line is expected to carry its CRLF terminator, a bare LF is accepted
// as well. ok is false when the line holds no colon, which is the case for
// the status line and the blank line closing the header block. Parse never
// fails: a truncated line yields an empty value.
func Parse(line []byte) (name, value string, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return "", "", false
	}

	rest := line[colon+1:]
	rest = trimTerminator(rest)
	if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}

	return string(line[:colon]), string(rest), true
}

// IsRedacted reports whether a header with the given name must be kept
// out of a Map. Cookie values are never exposed as generic headers.
func IsRedacted(name string) bool {
	return name == SetCookie
}

// Add parses line and stores the header in m. Lines without a colon and
// redacted headers are skipped. It reports whether m was modified.
func (m Map) Add(line []byte) bool {
	name, value, ok := Parse(line)
	if !ok || IsRedacted(name) {
		return false
	}

	m[name] = value

	return true
}

func trimTerminator(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}

	return b
}
