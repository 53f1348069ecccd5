package textutil

import "strings"

// EscapeMode selects the octal forms an escape decoder accepts.
type EscapeMode int

const (
	// EscapeEcho is echo -e and printf %b: \0NNN, and \NNN when the first
	// digit is not zero.
	EscapeEcho EscapeMode = iota
	// EscapeFormat is a printf format string: \NNN only.
	EscapeFormat
)

// DecodeEscape decodes the backslash escape at the start of s. It returns
// the decoded text, the number of bytes consumed and whether the escape
// was \c. Unknown escapes decode to themselves, backslash included.
func DecodeEscape(s string, mode EscapeMode) (string, int, bool) {
	if len(s) < 2 || s[0] != '\\' {
		return "\\", 1, false
	}
	switch c := s[1]; c {
	case 'a':
		return "\a", 2, false
	case 'b':
		return "\b", 2, false
	case 'f':
		return "\f", 2, false
	case 'n':
		return "\n", 2, false
	case 'r':
		return "\r", 2, false
	case 't':
		return "\t", 2, false
	case 'v':
		return "\v", 2, false
	case '\\':
		return "\\", 2, false
	case 'c':
		return "", 2, true
	case 'x':
		val, n := digits(s[2:], 16, 2)
		if n == 0 {
			return s[:2], 2, false
		}
		return string([]byte{byte(val)}), 2 + n, false
	case '0', '1', '2', '3', '4', '5', '6', '7':
		start := 1
		if c == '0' && mode == EscapeEcho {
			start = 2
		}
		val, n := digits(s[start:], 8, 3)
		return string([]byte{byte(val)}), start + n, false
	default:
		return s[:2], 2, false
	}
}

// Unescape decodes every escape in s up to a \c, and reports whether one
// was seen.
func Unescape(s string, mode EscapeMode) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, false
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		text, n, stop := DecodeEscape(s[i:], mode)
		if stop {
			return b.String(), true
		}
		b.WriteString(text)
		i += n
	}
	return b.String(), false
}

func digits(s string, base, max int) (int, int) {
	val, n := 0, 0
	for n < max && n < len(s) {
		d := digitValue(s[n])
		if d < 0 || d >= base {
			break
		}
		val = val*base + d
		n++
	}
	return val, n
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
