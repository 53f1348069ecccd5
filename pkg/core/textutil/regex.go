package textutil

import (
	"regexp"
	"strings"
)

// TranslateRegexp rewrites a POSIX basic (or, with extended, an extended)
// regular expression into Go syntax. Bracket expressions are copied as is,
// which keeps [[:alpha:]] style classes working.
func TranslateRegexp(pat string, extended bool) string {
	var b strings.Builder
	atStart := true
	for i := 0; i < len(pat); i++ {
		c := pat[i]
		switch {
		case c == '[':
			end := bracketEnd(pat, i)
			if end < 0 {
				b.WriteString(`\[`)
				break
			}
			b.WriteString(pat[i : end+1])
			i = end
		case c == '\\' && i+1 < len(pat):
			i++
			n := pat[i]
			switch {
			case n == '<' || n == '>':
				b.WriteString(`\b`)
			case !extended && strings.IndexByte("(){}|+?", n) >= 0:
				b.WriteByte(n)
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
			atStart = n == '('
			continue
		case !extended && strings.IndexByte("(){}|+?", c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '*' && atStart:
			b.WriteString(`\*`)
		default:
			b.WriteByte(c)
		}
		atStart = c == '^' && b.Len() == 1 || extended && c == '('
	}
	return b.String()
}

// bracketEnd returns the index of the ']' closing the bracket expression
// that opens at i, or -1.
func bracketEnd(pat string, i int) int {
	j := i + 1
	if j < len(pat) && pat[j] == '^' {
		j++
	}
	if j < len(pat) && pat[j] == ']' {
		j++
	}
	for ; j < len(pat); j++ {
		switch {
		case pat[j] == '[' && j+1 < len(pat) && (pat[j+1] == ':' || pat[j+1] == '.' || pat[j+1] == '='):
			end := strings.Index(pat[j+2:], string(pat[j+1])+"]")
			if end < 0 {
				return -1
			}
			j += 2 + end + 1
		case pat[j] == ']':
			return j
		}
	}
	return -1
}

// CompileRegexp translates and compiles pat.
func CompileRegexp(pat string, extended, ignoreCase bool) (*regexp.Regexp, error) {
	expr := TranslateRegexp(pat, extended)
	if ignoreCase {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}
