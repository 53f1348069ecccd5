package umount_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/umount"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func mounted(t *testing.T, ctx *core.Context) {
	t.Helper()
	if err := ctx.System.Storage.Mount("/dev/sdb1", "/mnt/data", ""); err != nil {
		t.Fatal(err)
	}
}

func detached(t *testing.T, _ *vfs.State, sys *sysstate.System) {
	t.Helper()
	if _, ok := sys.Storage.MountPoint("/mnt/data"); ok {
		t.Error("/mnt/data still mounted")
	}
}

func TestUmount(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:  "by_target",
			Args:  []string{"/mnt/data"},
			Setup: mounted,
			Check: detached,
		},
		{
			Name:  "by_device",
			Args:  []string{"/dev/sdb1"},
			Setup: mounted,
			Check: detached,
		},
		{
			Name:  "by_device_name",
			Args:  []string{"sdb1"},
			Setup: mounted,
			Check: detached,
		},
		{
			Name: "tmpfs",
			Args: []string{"/tmp"},
			Check: func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
				if _, ok := sys.Storage.MountPoint("/tmp"); ok {
					t.Error("/tmp still mounted")
				}
			},
		},
		{
			Name:       "root_busy",
			Args:       []string{"/"},
			WantStatus: core.StatusError,
			WantErr:    "umount: /: target is busy.",
		},
		{
			Name:       "not_mounted",
			Args:       []string{"/mnt/data"},
			WantStatus: core.StatusError,
			WantErr:    "umount: /mnt/data: not mounted.",
		},
		{
			Name:       "missing_operand",
			WantStatus: core.StatusError,
			WantErr:    "umount: bad usage",
		},
	}
	testutil.RunAppletTests(t, umount.Run, tests)
}
