// Package validate decides whether a typed command solves a level: by
// normalized command text, by pipeline equivalence, or by the outcome it
// left in the filesystem and the simulated machine.
package validate

import (
	"sort"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/rcarmo/go-shellsim/pkg/parse"
)

// aliases expand to a command name plus fixed flags before comparison.
var aliases = map[string][]string{
	"egrep": {"grep", "-E"},
	"fgrep": {"grep", "-F"},
	"ll":    {"ls", "-l"},
}

// Stage is one normalized pipeline stage.
type Stage struct {
	Name  string
	Flags string
	Long  []string
	Args  []string
}

func (s Stage) String() string {
	parts := []string{s.Name}
	if s.Flags != "" {
		parts = append(parts, "-"+s.Flags)
	}
	parts = append(parts, s.Long...)
	for _, a := range s.Args {
		if strings.HasPrefix(a, "-") && a != "-" {
			parts = append(parts, "--")
			break
		}
	}
	parts = append(parts, s.Args...)
	return strings.Join(parts, " ")
}

// noop reports whether the stage passes its input through unchanged.
func (s Stage) noop() bool {
	if s.Flags != "" || len(s.Long) > 0 {
		return false
	}
	switch s.Name {
	case "cat":
		return len(s.Args) == 0 || len(s.Args) == 1 && s.Args[0] == "-"
	case "tee":
		return len(s.Args) == 0
	}
	return false
}

// Stages splits cmd into normalized stages. Flag clusters are merged and
// sorted so "-la" and "-a -l" compare equal; long options keep their order
// relative to each other but sort ahead of operands.
func Stages(cmd string) []Stage {
	var stages []Stage
	for _, words := range splitStages(cmd) {
		if len(words) == 0 {
			continue
		}
		stages = append(stages, normalize(words))
	}
	return stages
}

func splitStages(cmd string) [][]string {
	parsed, err := parse.Parse(cmd)
	if err != nil || parsed == nil {
		words, werr := shellwords.SplitPosix(cmd)
		if werr != nil {
			words = strings.Fields(cmd)
		}
		return [][]string{words}
	}
	var out [][]string
	for _, c := range parsed.Commands() {
		words, err := shellwords.SplitPosix(c.String())
		if err != nil {
			words = strings.Fields(c.String())
		}
		out = append(out, words)
	}
	return out
}

func normalize(words []string) Stage {
	name := strings.ToLower(words[0])
	rest := words[1:]
	if a, ok := aliases[name]; ok {
		name = a[0]
		rest = append(append([]string(nil), a[1:]...), rest...)
	}
	st := Stage{Name: name}
	flags := map[rune]bool{}
	for i, w := range rest {
		switch {
		case w == "--":
			st.Args = append(st.Args, rest[i+1:]...)
			return finish(st, flags)
		case strings.HasPrefix(w, "--"):
			st.Long = append(st.Long, w)
		case len(w) > 1 && w[0] == '-':
			for _, r := range w[1:] {
				flags[r] = true
			}
		default:
			st.Args = append(st.Args, w)
		}
	}
	return finish(st, flags)
}

func finish(st Stage, flags map[rune]bool) Stage {
	letters := make([]rune, 0, len(flags))
	for r := range flags {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	st.Flags = string(letters)
	sort.Strings(st.Long)
	return st
}

// Signature is the normalized text of every stage joined by " | ".
func Signature(cmd string) string {
	return join(Stages(cmd), false)
}

// PipelineSignature is Signature with pass-through stages removed, so
// "cat notes | cat | grep x" and "cat notes | grep x" compare equal.
func PipelineSignature(cmd string) string {
	return join(Stages(cmd), true)
}

func join(stages []Stage, dropNoops bool) string {
	parts := make([]string, 0, len(stages))
	for _, s := range stages {
		if dropNoops && len(stages) > 1 && s.noop() {
			continue
		}
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " | ")
}

// ValidateCommand reports whether typed matches expected or any accepted
// command after normalization.
func ValidateCommand(typed, expected string, accepted ...string) bool {
	sig := Signature(typed)
	if sig == "" {
		return false
	}
	for _, c := range append([]string{expected}, accepted...) {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if strings.TrimSpace(typed) == strings.TrimSpace(c) || Signature(c) == sig {
			return true
		}
	}
	return false
}
