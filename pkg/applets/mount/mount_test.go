package mount_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/mount"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestMount(t *testing.T) {
	mnt := map[string]string{"/mnt/data/": "", "file": "x"}
	tests := []testutil.AppletTestCase{
		{
			Name:       "list",
			WantOutSub: "/dev/sda1 on / type ext4 (rw,relatime)\ntmpfs on /tmp type tmpfs (rw,nosuid,nodev)",
		},
		{
			Name:    "list_type",
			Args:    []string{"-t", "tmpfs"},
			WantOut: "tmpfs on /tmp type tmpfs (rw,nosuid,nodev)",
		},
		{
			Name:  "attach",
			Args:  []string{"/dev/sdb1", "/mnt/data"},
			Files: mnt,
			Check: func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
				m, ok := sys.Storage.MountPoint("/mnt/data")
				if !ok || m.Source != "/dev/sdb1" || m.FSType != "ext4" {
					t.Errorf("mount = %+v, %v", m, ok)
				}
			},
		},
		{
			Name:  "attach_with_type",
			Args:  []string{"-t", "ext4", "sdb1", "/mnt/data"},
			Files: mnt,
		},
		{
			Name:       "missing_mount_point",
			Args:       []string{"/dev/sdb1", "/mnt/none"},
			WantStatus: core.StatusError,
			WantErr:    "mount: /mnt/none: mount point does not exist.",
		},
		{
			Name:       "not_a_directory",
			Args:       []string{"/dev/sdb1", "file"},
			Files:      mnt,
			WantStatus: core.StatusError,
			WantErr:    "mount point is not a directory.",
		},
		{
			Name:       "unknown_device",
			Args:       []string{"/dev/sdz1", "/mnt/data"},
			Files:      mnt,
			WantStatus: core.StatusError,
			WantErr:    "special device /dev/sdz1 does not exist.",
		},
		{
			Name:       "wrong_type",
			Args:       []string{"-t", "xfs", "/dev/sdb1", "/mnt/data"},
			Files:      mnt,
			WantStatus: core.StatusError,
			WantErr:    "wrong fs type",
		},
		{
			Name:       "already_mounted",
			Args:       []string{"/dev/sda1", "/mnt/data"},
			Files:      mnt,
			WantStatus: core.StatusError,
			WantErr:    "/dev/sda1 already mounted on /.",
		},
	}
	testutil.RunAppletTests(t, mount.Run, tests)
}
