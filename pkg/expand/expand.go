// Package expand turns raw argument tokens into the concrete arguments a
// builtin receives: tilde, variable, brace and glob expansion followed by
// quote removal.
package expand

import (
	"regexp"
	"strconv"
	"strings"

	cache "github.com/go-pkgz/expirable-cache/v3"

	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

const (
	// patternCacheSize bounds the compiled glob segment cache.
	patternCacheSize = 256
	// maxBraceItems caps a numeric range; larger ranges pass through.
	maxBraceItems = 4096
)

// Env is the variable scope for one expansion.
type Env struct {
	Vars map[string]string
	// Home is what a bare ~ expands to.
	Home string
}

// Expander expands words against a filesystem snapshot. It is safe to reuse
// across commands; compiled glob segments are cached.
type Expander struct {
	patterns cache.Cache[string, *regexp.Regexp]
}

// New returns an Expander with an empty pattern cache.
func New() *Expander {
	return &Expander{
		patterns: cache.NewCache[string, *regexp.Regexp]().WithMaxKeys(patternCacheSize).WithLRU(),
	}
}

// char is one rune of a word after quote removal. lit marks runes that
// came from quoting or escaping and so take no part in brace or glob
// expansion.
type char struct {
	r   rune
	lit bool
}

type word []char

func (w word) String() string {
	var sb strings.Builder
	for _, c := range w {
		sb.WriteRune(c.r)
	}
	return sb.String()
}

// Args expands every raw token in order. A token may expand to zero or more
// arguments; an empty unquoted expansion is dropped.
func (e *Expander) Args(st *vfs.State, env Env, raw []string) []string {
	var out []string
	for _, r := range raw {
		out = append(out, e.Word(st, env, r)...)
	}
	return out
}

// Word expands a single raw token.
func (e *Expander) Word(st *vfs.State, env Env, raw string) []string {
	w, quoted := scan(raw, env)
	if len(w) == 0 {
		if quoted {
			return []string{""}
		}
		return nil
	}
	var out []string
	for _, b := range brace(w) {
		out = append(out, e.glob(st, b)...)
	}
	return out
}

// Unquote removes quoting from raw without expanding anything else.
func Unquote(raw string) string {
	w, _ := scan(raw, Env{})
	return w.String()
}

// scan performs tilde and variable expansion and removes quotes. quoted
// reports whether raw held any quoting at all.
func scan(raw string, env Env) (w word, quoted bool) {
	rs := []rune(raw)
	out := make(word, 0, len(rs))
	i := tilde(rs, env, &out)
	var single, double bool
	for i < len(rs) {
		r := rs[i]
		switch {
		case single:
			if r == '\'' {
				single = false
			} else {
				out = append(out, char{r, true})
			}
			i++
		case r == '\\':
			if i+1 == len(rs) {
				out = append(out, char{'\\', true})
				i++
				continue
			}
			next := rs[i+1]
			if double && !strings.ContainsRune("$`\"\\", next) {
				out = append(out, char{'\\', true})
			}
			out = append(out, char{next, true})
			i += 2
		case r == '\'' && !double:
			single, quoted = true, true
			i++
		case r == '"':
			double, quoted = !double, true
			i++
		case r == '$':
			val, n := variable(rs[i:], env)
			if n == 0 {
				out = append(out, char{'$', true})
				i++
				continue
			}
			for _, v := range val {
				out = append(out, char{v, double})
			}
			i += n
		default:
			out = append(out, char{r, double})
			i++
		}
	}
	return out, quoted
}

// tilde expands a leading ~ or ~name and returns how many runes it used.
func tilde(rs []rune, env Env, out *word) int {
	if len(rs) == 0 || rs[0] != '~' {
		return 0
	}
	end := 1
	for end < len(rs) && rs[end] != '/' {
		if !isNameRune(rs[end], end > 1) && rs[end] != '-' && rs[end] != '.' {
			return 0
		}
		end++
	}
	home := env.Home
	if end > 1 {
		home = "/home/" + string(rs[1:end])
	}
	if home == "" {
		return 0
	}
	for _, r := range home {
		*out = append(*out, char{r, true})
	}
	return end
}

// variable reads $NAME, ${NAME} or $? at the start of rs. It returns the
// value and the number of runes consumed; zero means rs does not start a
// variable reference.
func variable(rs []rune, env Env) (string, int) {
	if len(rs) < 2 {
		return "", 0
	}
	if rs[1] == '?' {
		if v, ok := env.Vars["?"]; ok {
			return v, 2
		}
		return "0", 2
	}
	if rs[1] == '{' {
		end := 2
		for end < len(rs) && rs[end] != '}' {
			if !isNameRune(rs[end], end > 2) {
				return "", 0
			}
			end++
		}
		if end == len(rs) || end == 2 {
			return "", 0
		}
		return env.Vars[string(rs[2:end])], end + 1
	}
	end := 1
	for end < len(rs) && isNameRune(rs[end], end > 1) {
		end++
	}
	if end == 1 {
		return "", 0
	}
	return env.Vars[string(rs[1:end])], end
}

func isNameRune(r rune, digitOK bool) bool {
	switch {
	case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return digitOK
	}
	return false
}

// Brace expands the first {a,b} list or {N..M} range in s. Strings without
// a valid group come back unchanged.
func Brace(s string) []string {
	w := make(word, 0, len(s))
	for _, r := range s {
		w = append(w, char{r: r})
	}
	var out []string
	for _, b := range brace(w) {
		out = append(out, b.String())
	}
	return out
}

func brace(w word) []word {
	start := -1
	for i, c := range w {
		if c.lit {
			continue
		}
		switch c.r {
		case '{':
			start = i
		case '}':
			if start < 0 {
				continue
			}
			if items := braceItems(w[start+1 : i]); items != nil {
				out := make([]word, 0, len(items))
				for _, item := range items {
					b := make(word, 0, len(w)+len(item))
					b = append(b, w[:start]...)
					b = append(b, item...)
					b = append(b, w[i+1:]...)
					out = append(out, b)
				}
				return out
			}
			start = -1
		}
	}
	return []word{w}
}

// braceItems splits the body of a brace group, or returns nil when the body
// is neither a comma list nor an integer range.
func braceItems(body word) []word {
	var items []word
	last := 0
	for i, c := range body {
		if !c.lit && c.r == ',' {
			items = append(items, body[last:i])
			last = i + 1
		}
	}
	if items != nil {
		return append(items, body[last:])
	}
	from, to, ok := braceRange(body.String())
	if !ok {
		return nil
	}
	step := 1
	if to < from {
		step = -1
	}
	if (to-from)*step >= maxBraceItems {
		return nil
	}
	for n := from; ; n += step {
		item := word{}
		for _, r := range strconv.Itoa(n) {
			item = append(item, char{r: r, lit: true})
		}
		items = append(items, item)
		if n == to {
			break
		}
	}
	return items
}

func braceRange(s string) (int, int, bool) {
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		return 0, 0, false
	}
	from, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.Atoi(hi)
	if err != nil || outOfRange(from) || outOfRange(to) {
		return 0, 0, false
	}
	return from, to, true
}

func outOfRange(n int) bool { return n < -1e9 || n > 1e9 }
