package df_test

import (
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/df"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestDf(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:       "header",
			WantOutSub: "Filesystem  1K-blocks  Used     Available  Use%  Mounted on",
		},
		{
			Name:       "human",
			Args:       []string{"-h"},
			WantOutSub: "/dev/sda1   19G   6.5G  13G    34%   /",
		},
		{
			Name:    "human_tmpfs",
			Args:    []string{"-h", "/tmp"},
			WantOut: "Filesystem  Size  Used  Avail  Use%  Mounted on\ntmpfs       512M  4.0K  512M   1%    /tmp",
		},
		{
			Name:       "type",
			Args:       []string{"-hT", "."},
			WantOutSub: "/dev/sda1   ext4",
		},
		{
			Name:       "missing_path",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "df: nope: No such file or directory",
		},
		{
			Name:       "bad_option",
			Args:       []string{"-z"},
			WantStatus: core.StatusError,
			WantErr:    "df: invalid option -- 'z'",
		},
	}
	testutil.RunAppletTests(t, df.Run, tests)
}

func TestDfCountsSessionFiles(t *testing.T) {
	used := func(files map[string]string) string {
		ctx := testutil.NewContext(testutil.NewState(t, files), "")
		res := df.Run(ctx, []string{"/tmp"})
		lines := core.Lines(res.Output)
		return strings.Fields(lines[len(lines)-1])[2]
	}
	before := used(nil)
	after := used(map[string]string{"/tmp/big": strings.Repeat("x", 8192)})
	if before != "4" || after != "12" {
		t.Errorf("used before %s after %s, want 4 and 12", before, after)
	}
}

func TestDfHidesPseudoFilesystems(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	if res := df.Run(ctx, nil); strings.Contains(res.Output, "proc") {
		t.Errorf("proc listed without -a:\n%s", res.Output)
	}
	if res := df.Run(ctx, []string{"-a"}); !strings.Contains(res.Output, "proc") {
		t.Errorf("proc missing with -a:\n%s", res.Output)
	}
}
