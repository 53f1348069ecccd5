package nice_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/nice"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func started(command string, nice int) func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		t.Helper()
		for _, p := range sys.Processes.List() {
			if p.Command == command {
				if p.Nice != nice {
					t.Errorf("nice = %d, want %d", p.Nice, nice)
				}
				if p.User != "user" || p.PPID != 1100 {
					t.Errorf("unexpected process %+v", p)
				}
				return
			}
		}
		t.Errorf("%q not started", command)
	}
}

func TestNice(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "print_niceness",
			WantOut: "0",
		},
		{
			Name:  "default_adjustment",
			Args:  []string{"tar", "czf", "backup.tgz", "docs"},
			Check: started("tar czf backup.tgz docs", 10),
		},
		{
			Name:  "explicit",
			Args:  []string{"-n", "5", "make"},
			Check: started("make", 5),
		},
		{
			Name:  "attached",
			Args:  []string{"-n15", "make"},
			Check: started("make", 15),
		},
		{
			Name:  "legacy_form",
			Args:  []string{"-19", "backup.sh"},
			Check: started("backup.sh", 19),
		},
		{
			Name:  "clamped",
			Args:  []string{"-n", "40", "make"},
			Check: started("make", 19),
		},
		{
			Name:       "negative_needs_root",
			Args:       []string{"-n", "-5", "make"},
			WantStatus: core.StatusError,
			WantErr:    "nice: cannot set niceness: Permission denied",
		},
		{
			Name:       "bad_adjustment",
			Args:       []string{"-n", "x", "make"},
			WantStatus: core.StatusError,
			WantErr:    "nice: invalid adjustment 'x'",
		},
		{
			Name:       "missing_argument",
			Args:       []string{"-n"},
			WantStatus: core.StatusError,
			WantErr:    "option requires an argument -- 'n'",
		},
	}

	testutil.RunAppletTests(t, nice.Run, tests)
}
