package journalctl_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/journalctl"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func seed(t *testing.T, ctx *core.Context) {
	j := ctx.System.Journal
	j.Append("nginx", sysstate.PriInfo, "Started nginx.")
	j.Append("backup", sysstate.PriErr, "disk full")
	j.Append("nginx", sysstate.PriWarning, "worker slow")
}

func TestJournalctl(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "empty",
			WantOut: "-- No entries --",
		},
		{
			Name:    "all",
			Setup:   seed,
			WantOut: "Jan 15 12:17:00 sandbox nginx: Started nginx.\nJan 15 12:17:00 sandbox backup: disk full\nJan 15 12:17:00 sandbox nginx: worker slow",
		},
		{
			Name:    "unit",
			Args:    []string{"-u", "nginx.service", "--no-pager"},
			Setup:   seed,
			WantOut: "Jan 15 12:17:00 sandbox nginx: Started nginx.\nJan 15 12:17:00 sandbox nginx: worker slow",
		},
		{
			Name:    "last",
			Args:    []string{"-n", "1"},
			Setup:   seed,
			WantOut: "Jan 15 12:17:00 sandbox nginx: worker slow",
		},
		{
			Name:    "priority",
			Args:    []string{"-p", "err"},
			Setup:   seed,
			WantOut: "Jan 15 12:17:00 sandbox backup: disk full",
		},
		{
			Name:    "reverse",
			Args:    []string{"-r", "-u", "nginx"},
			Setup:   seed,
			WantOut: "Jan 15 12:17:00 sandbox nginx: worker slow\nJan 15 12:17:00 sandbox nginx: Started nginx.",
		},
		{
			Name:       "bad_priority",
			Args:       []string{"-p", "loud"},
			WantStatus: core.StatusError,
			WantErr:    "Failed to parse log level 'loud'",
		},
		{
			Name:       "bad_lines",
			Args:       []string{"-n", "x"},
			WantStatus: core.StatusError,
			WantErr:    "Failed to parse lines 'x'",
		},
	}
	testutil.RunAppletTests(t, journalctl.Run, tests)
}
