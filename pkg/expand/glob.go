package expand

import (
	"regexp"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/pattern"

	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

const globMode = pattern.Filenames | pattern.EntireString | pattern.NoGlobStar

// segment is one slash-separated part of a glob word.
type segment struct {
	text    string // literal text with quoting removed
	pattern string // shell pattern with literal metacharacters escaped
	meta    bool
}

type match struct {
	display string
	abs     string
}

// glob expands w against st. A word without unquoted metacharacters, or one
// that matches nothing, comes back as its literal text.
func (e *Expander) glob(st *vfs.State, w word) []string {
	literal := w.String()
	if st == nil || !hasMeta(w) {
		return []string{literal}
	}
	segs := split(w)
	cur := []match{{abs: st.Cwd()}}
	if len(w) > 0 && w[0].r == '/' {
		cur = []match{{display: "/", abs: "/"}}
	}
	for i, seg := range segs {
		if seg.text == "" {
			if i > 0 && i == len(segs)-1 {
				cur = trailingSlash(st, cur)
			}
			continue
		}
		var next []match
		if seg.meta {
			re, err := e.compile(seg.pattern)
			if err != nil {
				return []string{literal}
			}
			next = e.matchDir(st, cur, re, strings.HasPrefix(seg.text, "."))
		} else {
			for _, m := range cur {
				abs := vfs.Join(m.abs, seg.text)
				if st.Exists(abs) {
					next = append(next, match{display: joinDisplay(m.display, seg.text), abs: abs})
				}
			}
		}
		cur = next
		if len(cur) == 0 {
			return []string{literal}
		}
	}
	out := make([]string, 0, len(cur))
	for _, m := range cur {
		out = append(out, m.display)
	}
	sort.Strings(out)
	return out
}

func (e *Expander) matchDir(st *vfs.State, cur []match, re *regexp.Regexp, dotOK bool) []match {
	var next []match
	for _, m := range cur {
		dir, err := st.Stat(m.abs)
		if err != nil || !dir.IsDir() {
			continue
		}
		for _, name := range dir.Names() {
			if strings.HasPrefix(name, ".") && !dotOK {
				continue
			}
			if re.MatchString(name) {
				next = append(next, match{display: joinDisplay(m.display, name), abs: vfs.Join(m.abs, name)})
			}
		}
	}
	return next
}

func trailingSlash(st *vfs.State, cur []match) []match {
	var out []match
	for _, m := range cur {
		if st.IsDir(m.abs) {
			out = append(out, match{display: m.display + "/", abs: m.abs})
		}
	}
	return out
}

func (e *Expander) compile(pat string) (*regexp.Regexp, error) {
	if re, ok := e.patterns.Get(pat); ok {
		return re, nil
	}
	expr, err := pattern.Regexp(pat, globMode)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.patterns.Set(pat, re, 0)
	return re, nil
}

func isMeta(r rune) bool { return r == '*' || r == '?' || r == '[' }

func hasMeta(w word) bool {
	for _, c := range w {
		if !c.lit && isMeta(c.r) {
			return true
		}
	}
	return false
}

// split cuts w at every slash into segments.
func split(w word) []segment {
	var segs []segment
	var text, pat strings.Builder
	meta := false
	flush := func() {
		segs = append(segs, segment{text: text.String(), pattern: pat.String(), meta: meta})
		text.Reset()
		pat.Reset()
		meta = false
	}
	for _, c := range w {
		if c.r == '/' {
			flush()
			continue
		}
		text.WriteRune(c.r)
		if !c.lit && isMeta(c.r) {
			meta = true
			pat.WriteRune(c.r)
			continue
		}
		pat.WriteString(pattern.QuoteMeta(string(c.r), 0))
	}
	flush()
	return segs
}

func joinDisplay(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case strings.HasSuffix(prefix, "/"):
		return prefix + name
	}
	return prefix + "/" + name
}
