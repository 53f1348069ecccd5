// Package testutil provides shared testing utilities and fixtures.
package testutil

import (
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Home is the working directory every fixture starts in.
const Home = "/home/user"

// NewState builds a filesystem with /home/user, /tmp and /etc, then adds
// files. Keys are paths relative to Home or absolute; a key ending in "/"
// makes a directory and its value is ignored.
func NewState(t testing.TB, files map[string]string) *vfs.State {
	t.Helper()
	st := vfs.New(vfs.NewDir(map[string]*vfs.Node{
		"home": vfs.NewDir(map[string]*vfs.Node{
			"user": vfs.NewDir(nil),
		}),
		"tmp": vfs.NewDir(nil, vfs.WithPerm(0o777)),
		"etc": vfs.NewDir(map[string]*vfs.Node{
			"hostname": vfs.NewFile("sandbox\n", vfs.WithOwner("root", "root")),
		}, vfs.WithOwner("root", "root")),
	}), Home)
	var err error
	for name, content := range files {
		if strings.HasSuffix(name, "/") {
			if st, err = st.Mkdir(name, true); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if dir := vfs.Dir(st.Abs(name)); !st.IsDir(dir) {
			if st, err = st.Mkdir(dir, true); err != nil {
				t.Fatalf("mkdir %s: %v", dir, err)
			}
		}
		if st, err = st.WriteFile(name, content, false); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return st
}

// NewContext returns a context over st with a fresh simulated machine, every
// feature enabled and input attached as stdin when non-empty.
func NewContext(st *vfs.State, input string) *core.Context {
	return &core.Context{
		State:    st,
		Stdin:    input,
		HasStdin: input != "",
		Env: map[string]string{
			"HOME": Home,
			"USER": vfs.DefaultOwner,
			"PWD":  st.Cwd(),
		},
		System: sysstate.New(""),
		Log:    logging.Discard(),
	}
}

// Run invokes run against ctx.
func Run(ctx *core.Context, run core.RunFunc, args ...string) core.Result {
	return run(ctx, args)
}

// FinalState is the state after res: the new one if res changed the
// filesystem, otherwise the one the command ran against.
func FinalState(ctx *core.Context, res core.Result) *vfs.State {
	if res.State != nil {
		return res.State
	}
	return ctx.State
}

// AssertStatus checks the result status.
func AssertStatus(t *testing.T, got, want core.Status) {
	t.Helper()
	if got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
}

// AssertOutput checks that output matches expected.
func AssertOutput(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// AssertOutputContains checks that output contains expected substring.
func AssertOutputContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output %q does not contain %q", got, want)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("expected error, got nil")
	}
}

// AssertExists checks that path names a node.
func AssertExists(t *testing.T, st *vfs.State, path string) {
	t.Helper()
	if !st.Exists(path) {
		t.Errorf("%s does not exist", path)
	}
}

// AssertNotExists checks that path names nothing.
func AssertNotExists(t *testing.T, st *vfs.State, path string) {
	t.Helper()
	if st.Exists(path) {
		t.Errorf("%s should not exist", path)
	}
}

// AssertFileContent checks that a file holds expected content.
func AssertFileContent(t *testing.T, st *vfs.State, path, want string) {
	t.Helper()
	got, err := st.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if got != want {
		t.Errorf("%s content = %q, want %q", path, got, want)
	}
}

// AppletTestCase defines a parameterized test case for applets.
type AppletTestCase struct {
	Name       string                                                  // Test name
	Args       []string                                                // Command line arguments
	Input      string                                                  // Stdin input
	WantStatus core.Status                                             // Expected result status
	WantOut    string                                                  // Expected output (exact match)
	WantOutSub string                                                  // Expected output substring
	WantErr    string                                                  // Expected error message substring
	Files      map[string]string                                       // Files to create under Home
	Setup      func(t *testing.T, ctx *core.Context)                   // Optional setup function
	Check      func(t *testing.T, st *vfs.State, sys *sysstate.System) // Optional post-run check
}

// RunAppletTests runs a slice of parameterized applet test cases.
func RunAppletTests(t *testing.T, run core.RunFunc, tests []AppletTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			ctx := NewContext(NewState(t, tt.Files), tt.Input)

			if tt.Setup != nil {
				tt.Setup(t, ctx)
			}

			res := run(ctx, tt.Args)

			AssertStatus(t, res.Status, tt.WantStatus)

			if tt.WantOut != "" {
				AssertOutput(t, res.Output, tt.WantOut)
			}
			if tt.WantOutSub != "" {
				AssertOutputContains(t, res.Output, tt.WantOutSub)
			}

			if tt.WantErr != "" {
				if !res.Failed() {
					t.Errorf("expected error containing %q, got %s %q", tt.WantErr, res.Status, res.Output)
				}
				AssertOutputContains(t, res.Output, tt.WantErr)
			}

			if tt.Check != nil {
				tt.Check(t, FinalState(ctx, res), ctx.System)
			}
		})
	}
}
