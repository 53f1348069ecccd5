package crontab_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcarmo/go-shellsim/pkg/applets/crontab"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func installed(user string, want ...string) func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		t.Helper()
		got, _ := sys.Cron.Lines(user)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("crontab mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCrontab(t *testing.T) {
	const job = "0 2 * * * /home/user/backup.sh"
	tests := []testutil.AppletTestCase{
		{
			Name:       "list_empty",
			Args:       []string{"-l"},
			WantStatus: core.StatusError,
			WantErr:    "crontab: no crontab for user",
		},
		{
			Name:  "install_file",
			Args:  []string{"jobs.cron"},
			Files: map[string]string{"jobs.cron": "# nightly\n\n" + job + "\n"},
			Check: installed("user", "# nightly", job),
		},
		{
			Name:  "install_stdin_dash",
			Args:  []string{"-"},
			Input: job + "\n",
			Check: installed("user", job),
		},
		{
			Name:  "install_piped",
			Input: "@reboot /usr/bin/startup\n",
			Check: installed("user", "@reboot /usr/bin/startup"),
		},
		{
			Name:  "ranges_and_steps",
			Input: "*/15 9-17 * 1,6 1-5 run.sh\n",
			Check: installed("user", "*/15 9-17 * 1,6 1-5 run.sh"),
		},
		{
			Name:       "bad_minute",
			Args:       []string{"-"},
			Input:      "61 * * * * x\n",
			WantStatus: core.StatusError,
			WantErr:    "crontab: -: line 1: bad minute\nerrors in crontab file, can't install.",
			Check:      installed("user"),
		},
		{
			Name:       "too_few_fields",
			Args:       []string{"-"},
			Input:      "* * * * \n",
			WantStatus: core.StatusError,
			WantErr:    "bad command",
		},
		{
			Name:       "other_user",
			Args:       []string{"-u", "root", "-l"},
			WantStatus: core.StatusError,
			WantErr:    "crontab: must be privileged to use -u",
		},
		{
			Name:       "missing_file",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "crontab: nope: No such file or directory",
		},
		{
			Name:       "no_input",
			WantStatus: core.StatusError,
			WantErr:    "must be specified",
		},
		{
			Name:       "remove_missing",
			Args:       []string{"-r"},
			WantStatus: core.StatusError,
			WantErr:    "no crontab for user",
		},
	}
	testutil.RunAppletTests(t, crontab.Run, tests)
}

func TestCrontabRoundTrip(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "30 4 * * 0 cleanup\n")
	if res := crontab.Run(ctx, []string{"-"}); res.Failed() {
		t.Fatalf("install: %s", res.Output)
	}
	ctx.Stdin, ctx.HasStdin = "", false
	res := crontab.Run(ctx, []string{"-l"})
	testutil.AssertOutput(t, res.Output, "30 4 * * 0 cleanup")
	if res := crontab.Run(ctx, []string{"-r"}); res.Failed() {
		t.Fatalf("remove: %s", res.Output)
	}
	testutil.AssertStatus(t, crontab.Run(ctx, []string{"-l"}).Status, core.StatusError)
}

func TestCrontabRoot(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	ctx.Env["USER"] = "root"
	res := crontab.Run(ctx, []string{"-l"})
	testutil.AssertOutputContains(t, res.Output, "run-parts --report /etc/cron.hourly")
}
