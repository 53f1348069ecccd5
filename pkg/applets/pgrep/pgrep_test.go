package pgrep_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/pgrep"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestPgrep(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "basic",
			Args:    []string{"nginx"},
			WantOut: "601\n602",
		},
		{
			Name:    "list_name",
			Args:    []string{"-l", "ssh"},
			WantOut: "412 sshd",
		},
		{
			Name:    "full_list",
			Args:    []string{"-af", "app"},
			WantOut: "1024 python3 app.py",
		},
		{
			Name:    "user",
			Args:    []string{"-u", "user", "."},
			WantOut: "1024\n1100",
		},
		{
			Name:    "count",
			Args:    []string{"-c", "nginx"},
			WantOut: "2",
		},
		{
			Name:    "delimiter",
			Args:    []string{"-d", ",", "nginx"},
			WantOut: "601,602",
		},
		{
			Name:    "newest",
			Args:    []string{"-n", "nginx"},
			WantOut: "602",
		},
		{
			Name: "missing",
			Args: []string{"definitely-not-running"},
		},
		{
			Name:       "no_pattern",
			WantStatus: core.StatusError,
			WantErr:    "no matching criteria specified",
		},
		{
			Name:       "bad_regexp",
			Args:       []string{"("},
			WantStatus: core.StatusError,
			WantErr:    "invalid regular expression",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
	}

	testutil.RunAppletTests(t, pgrep.Run, tests)
}
