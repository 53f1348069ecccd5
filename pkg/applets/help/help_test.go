package help_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/help"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withRegistry(t *testing.T, ctx *core.Context) {
	t.Helper()
	noop := func(*core.Context, []string) core.Result { return core.Ok("") }
	ctx.Registry = core.NewRegistry(
		core.Applet{Command: "ls", Summary: "list directory contents", Main: noop},
		core.Applet{Command: "cat", Summary: "concatenate files", Main: noop},
	)
}

func TestHelp(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "all",
			Setup:   withRegistry,
			WantOut: "COMMAND  DESCRIPTION\ncat      concatenate files\nls       list directory contents",
		},
		{
			Name:    "one",
			Args:    []string{"LS"},
			Setup:   withRegistry,
			WantOut: "COMMAND  DESCRIPTION\nls       list directory contents",
		},
		{
			Name:       "unknown",
			Args:       []string{"frob"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "help: no help topics match `frob'.",
		},
	}

	testutil.RunAppletTests(t, help.Run, tests)
}
