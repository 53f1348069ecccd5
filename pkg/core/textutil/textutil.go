// Package textutil provides shared helpers for the text-processing applets.
package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a 1-based inclusive position range. To == 0 means "to the end".
type Span struct {
	From int
	To   int
}

func (s Span) contains(i int) bool {
	return i >= s.From && (s.To == 0 || i <= s.To)
}

// ParseList parses a cut-style list: N, N-, -M and N-M separated by commas.
func ParseList(spec string) ([]Span, error) {
	if spec == "" {
		return nil, fmt.Errorf("you must specify a list of bytes, characters, or fields")
	}
	var spans []Span
	for _, part := range strings.Split(spec, ",") {
		span, err := parseSpan(part)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

func parseSpan(part string) (Span, error) {
	bad := fmt.Errorf("invalid field value '%s'", part)
	lo, hi, isRange := strings.Cut(part, "-")
	if !isRange {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return Span{}, bad
		}
		return Span{From: n, To: n}, nil
	}
	if lo == "" && hi == "" {
		return Span{}, bad
	}
	span := Span{From: 1}
	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil || n < 1 {
			return Span{}, bad
		}
		span.From = n
	}
	if hi != "" {
		n, err := strconv.Atoi(hi)
		if err != nil || n < span.From {
			return Span{}, bad
		}
		span.To = n
	}
	return span, nil
}

func selected(spans []Span, i int) bool {
	for _, s := range spans {
		if s.contains(i) {
			return true
		}
	}
	return false
}

// SelectFields keeps the fields of line named by spans, in input order.
// A line without the delimiter is passed through unless onlyDelimited is
// set, in which case ok is false.
func SelectFields(line, delim string, spans []Span, onlyDelimited bool) (string, bool) {
	if !strings.Contains(line, delim) {
		return line, !onlyDelimited
	}
	fields := strings.Split(line, delim)
	kept := fields[:0:0]
	for i, f := range fields {
		if selected(spans, i+1) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, delim), true
}

// SelectChars keeps the characters of line named by spans.
func SelectChars(line string, spans []Span) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if selected(spans, i+1) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SkipFields drops the first n blank-separated fields, keeping the blanks
// that precede the next one, as uniq -f does.
func SkipFields(line string, n int) string {
	i := 0
	for ; n > 0 && i < len(line); n-- {
		for i < len(line) && isBlank(line[i]) {
			i++
		}
		for i < len(line) && !isBlank(line[i]) {
			i++
		}
	}
	return line[i:]
}

// SkipChars drops the first n characters.
func SkipChars(line string, n int) string {
	r := []rune(line)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// SortKey is a sort -k FIELD[.CHAR] start position.
type SortKey struct {
	Field int
	Char  int
}

// ParseSortKey parses "F", "F.C" or "F,F2"; only the start position is
// honoured and the key runs to the end of the line.
func ParseSortKey(spec string) (SortKey, error) {
	start, _, _ := strings.Cut(spec, ",")
	fieldPart, charPart, hasChar := strings.Cut(start, ".")
	field, err := strconv.Atoi(strings.TrimRight(fieldPart, "bdfginr"))
	if err != nil || field < 1 {
		return SortKey{}, fmt.Errorf("invalid number at field start: invalid count at start of '%s'", spec)
	}
	key := SortKey{Field: field}
	if hasChar {
		c, err := strconv.Atoi(strings.TrimRight(charPart, "bdfginr"))
		if err != nil || c < 1 {
			return SortKey{}, fmt.Errorf("character offset is zero: invalid field specification '%s'", spec)
		}
		key.Char = c
	}
	return key, nil
}

// Extract returns the part of line the key selects. An empty sep splits on
// runs of blanks.
func (k SortKey) Extract(line, sep string) string {
	var fields []string
	if sep == "" {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, sep)
	}
	if k.Field > len(fields) {
		return ""
	}
	key := strings.Join(fields[k.Field-1:], firstNonEmpty(sep, " "))
	if k.Char > 1 {
		key = SkipChars(key, k.Char-1)
	}
	return key
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Numeric parses the leading number of s after blanks. ok is false when s
// does not start with a number.
func Numeric(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var classes = map[string]func(r rune) bool{
	"alnum":  func(r rune) bool { return isAlpha(r) || isDigit(r) },
	"alpha":  isAlpha,
	"digit":  isDigit,
	"lower":  func(r rune) bool { return r >= 'a' && r <= 'z' },
	"upper":  func(r rune) bool { return r >= 'A' && r <= 'Z' },
	"space":  func(r rune) bool { return strings.ContainsRune(" \t\n\r\f\v", r) },
	"blank":  func(r rune) bool { return r == ' ' || r == '\t' },
	"punct":  func(r rune) bool { return r > 32 && r < 127 && !isAlpha(r) && !isDigit(r) },
	"print":  func(r rune) bool { return r >= 32 && r < 127 },
	"graph":  func(r rune) bool { return r > 32 && r < 127 },
	"cntrl":  func(r rune) bool { return r < 32 || r == 127 },
	"xdigit": func(r rune) bool { return isDigit(r) || (r|0x20) >= 'a' && (r|0x20) <= 'f' },
}

func isAlpha(r rune) bool { return (r|0x20) >= 'a' && (r|0x20) <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// ExpandSet expands a tr SET: escapes, a-z ranges and [:class:] names.
// Classes expand over ASCII in code point order.
func ExpandSet(spec string) ([]rune, error) {
	set, _ := Unescape(spec, EscapeFormat)
	runes := []rune(set)
	var out []rune
	for i := 0; i < len(runes); i++ {
		if runes[i] == '[' && i+1 < len(runes) && runes[i+1] == ':' {
			rest := string(runes[i+2:])
			if end := strings.Index(rest, ":]"); end > 0 {
				pred, ok := classes[rest[:end]]
				if !ok {
					return nil, fmt.Errorf("invalid character class '%s'", rest[:end])
				}
				for r := rune(0); r < 128; r++ {
					if pred(r) {
						out = append(out, r)
					}
				}
				i += 2 + len([]rune(rest[:end])) + 1
				continue
			}
		}
		if i+2 < len(runes) && runes[i+1] == '-' {
			lo, hi := runes[i], runes[i+2]
			if hi < lo {
				return nil, fmt.Errorf("range-endpoints of '%c-%c' are in reverse collating sequence order", lo, hi)
			}
			for r := lo; r <= hi; r++ {
				out = append(out, r)
			}
			i += 2
			continue
		}
		out = append(out, runes[i])
	}
	return out, nil
}
