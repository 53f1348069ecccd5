package logger_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/logger"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func logged(unit string, prio int, msgs ...string) func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		t.Helper()
		entries := sys.Journal.Query(unit, sysstate.PriDebug, 0)
		if len(entries) != len(msgs) {
			t.Fatalf("got %d entries, want %d", len(entries), len(msgs))
		}
		for i, e := range entries {
			if e.Message != msgs[i] || e.Priority != prio {
				t.Errorf("entry %d = %+v", i, e)
			}
		}
	}
}

func TestLogger(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:  "default_tag",
			Args:  []string{"backup", "done"},
			Check: logged("user", sysstate.PriNotice, "backup done"),
		},
		{
			Name:  "tag_and_priority",
			Args:  []string{"-t", "deploy", "-p", "user.err", "failed"},
			Check: logged("deploy", sysstate.PriErr, "failed"),
		},
		{
			Name:  "stdin_lines",
			Args:  []string{"-t", "cat"},
			Input: "one\n\ntwo\n",
			Check: logged("cat", sysstate.PriNotice, "one", "two"),
		},
		{
			Name:    "echo",
			Args:    []string{"-s", "-t", "app", "hi"},
			WantOut: "<notice> app: hi",
		},
		{
			Name:       "bad_priority",
			Args:       []string{"-p", "loud", "x"},
			WantStatus: core.StatusError,
			WantErr:    "logger: unknown priority name: loud",
		},
	}
	testutil.RunAppletTests(t, logger.Run, tests)
}
