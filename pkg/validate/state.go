package validate

import (
	"fmt"
	"sort"
	"strings"

	pluralize "github.com/gertd/go-pluralize"
	"github.com/google/go-cmp/cmp"

	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

var words = pluralize.NewClient()

// maxListed caps the paths named in one message.
const maxListed = 5

// Outcome is a validation verdict. Message explains a failure.
type Outcome struct {
	Success bool
	Message string
}

func pass() Outcome { return Outcome{Success: true} }

func fail(format string, args ...any) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...)}
}

// nodeView is the part of a node the comparison looks at: kind, file
// content and symlink target. Modes and owners are not compared.
type nodeView struct {
	Kind    string
	Content string
	Target  string
}

func snapshot(st *vfs.State) map[string]nodeView {
	out := map[string]nodeView{}
	_ = st.Walk("/", func(p string, n *vfs.Node) error {
		out[p] = nodeView{Kind: n.Kind().String(), Content: n.Content(), Target: n.Target()}
		return nil
	})
	return out
}

// ValidateFileSystemState compares the current directory and the whole
// tree of actual against expected. A nil expected state always passes.
func ValidateFileSystemState(actual, expected *vfs.State) Outcome {
	if expected == nil {
		return pass()
	}
	if actual == nil {
		return fail("no filesystem to compare")
	}
	if actual.Cwd() != expected.Cwd() {
		return fail("expected to be in %s, but the current directory is %s", expected.Cwd(), actual.Cwd())
	}
	got, want := snapshot(actual), snapshot(expected)
	if cmp.Equal(got, want) {
		return pass()
	}
	var missing, extra, changed []string
	for p, w := range want {
		g, ok := got[p]
		switch {
		case !ok:
			missing = append(missing, p)
		case g != w:
			changed = append(changed, p)
		}
	}
	for p := range got {
		if _, ok := want[p]; !ok {
			extra = append(extra, p)
		}
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, describe("expected ", "path", "missing", missing))
	}
	if len(extra) > 0 {
		parts = append(parts, describe("unexpected ", "path", "present", extra))
	}
	if len(changed) > 0 {
		parts = append(parts, describe("", "path", "different", changed))
	}
	return fail("%s", strings.Join(parts, "; "))
}

// describe renders "2 expected paths missing: /a, /b".
func describe(adj, noun, state string, paths []string) string {
	sort.Strings(paths)
	n := len(paths)
	listed := paths
	if n > maxListed {
		listed = append(paths[:maxListed:maxListed], "...")
	}
	return fmt.Sprintf("%d %s%s %s: %s", n, adj, words.Pluralize(noun, n, false), state, strings.Join(listed, ", "))
}
