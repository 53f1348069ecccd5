package lsblk_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/lsblk"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestLsblk(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name: "tree",
			WantOut: "NAME    MAJ:MIN  RM  SIZE  RO  TYPE  MOUNTPOINTS\n" +
				"sda     8:0      0   20G   0   disk\n" +
				"├─sda1  8:1      0   19G   0   part  /\n" +
				"└─sda2  8:2      0   1G    0   part  [SWAP]\n" +
				"sdb     8:16     0   8G    0   disk\n" +
				"└─sdb1  8:17     0   8G    0   part",
		},
		{
			Name:       "mounted_after_mount",
			Args:       []string{"sdb"},
			WantOutSub: "└─sdb1  8:17     0   8G    0   part  /mnt/usb",
			Setup: func(t *testing.T, ctx *core.Context) {
				if err := ctx.System.Storage.Mount("/dev/sdb1", "/mnt/usb", "ext4"); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			Name:       "filesystems",
			Args:       []string{"-f", "/dev/sda"},
			WantOutSub: "├─sda1  ext4    /",
		},
		{
			Name:       "unknown",
			Args:       []string{"sdz"},
			WantStatus: core.StatusError,
			WantErr:    "lsblk: sdz: not a block device",
		},
	}
	testutil.RunAppletTests(t, lsblk.Run, tests)
}
