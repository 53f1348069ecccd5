package sysstate

import (
	"fmt"
	"strings"
)

// BlockDevice is a disk or partition as lsblk shows it. Size is in bytes.
type BlockDevice struct {
	Name   string
	Parent string
	Size   int64
	Type   string
	FSType string
}

// Mount is one mount table entry. Size and Used are in bytes; Used is the
// baseline before any files the session adds.
type Mount struct {
	Source  string
	Target  string
	FSType  string
	Options string
	Size    int64
	Used    int64
}

// Storage holds block devices and the mount table.
type Storage struct {
	devices []BlockDevice
	mounts  []Mount
}

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

func newStorage() *Storage {
	return &Storage{
		devices: []BlockDevice{
			{Name: "sda", Size: 20 * gib, Type: "disk"},
			{Name: "sda1", Parent: "sda", Size: 19 * gib, Type: "part", FSType: "ext4"},
			{Name: "sda2", Parent: "sda", Size: 1 * gib, Type: "part", FSType: "swap"},
			{Name: "sdb", Size: 8 * gib, Type: "disk"},
			{Name: "sdb1", Parent: "sdb", Size: 8 * gib, Type: "part", FSType: "ext4"},
		},
		mounts: []Mount{
			{Source: "/dev/sda1", Target: "/", FSType: "ext4", Options: "rw,relatime", Size: 19 * gib, Used: 6*gib + 420*mib},
			{Source: "tmpfs", Target: "/tmp", FSType: "tmpfs", Options: "rw,nosuid,nodev", Size: 512 * mib, Used: 4 * kib},
			{Source: "proc", Target: "/proc", FSType: "proc", Options: "rw,nosuid,nodev,noexec,relatime"},
		},
	}
}

// Devices returns the block devices, disks before their partitions.
func (s *Storage) Devices() []BlockDevice {
	return append([]BlockDevice(nil), s.devices...)
}

// Device looks up a device by name or /dev path.
func (s *Storage) Device(name string) (BlockDevice, bool) {
	name = strings.TrimPrefix(name, "/dev/")
	for _, d := range s.devices {
		if d.Name == name {
			return d, true
		}
	}
	return BlockDevice{}, false
}

// Mounts returns the mount table in mount order.
func (s *Storage) Mounts() []Mount {
	return append([]Mount(nil), s.mounts...)
}

// MountPoint returns the mount that source or target names.
func (s *Storage) MountPoint(name string) (Mount, bool) {
	for _, m := range s.mounts {
		if m.Source == name || m.Target == name {
			return m, true
		}
	}
	return Mount{}, false
}

// MountFor returns the mount holding path: the longest matching target.
func (s *Storage) MountFor(path string) Mount {
	best := s.mounts[0]
	for _, m := range s.mounts {
		if (path == m.Target || strings.HasPrefix(path, strings.TrimSuffix(m.Target, "/")+"/")) && len(m.Target) > len(best.Target) {
			best = m
		}
	}
	return best
}

// Mount attaches source at target. fsType "" or "auto" uses the device's
// filesystem.
func (s *Storage) Mount(source, target, fsType string) error {
	dev, ok := s.Device(source)
	if !ok {
		return fmt.Errorf("special device %s does not exist.", source)
	}
	if dev.Type == "disk" || dev.FSType == "" || dev.FSType == "swap" {
		return fmt.Errorf("wrong fs type, bad option, bad superblock on /dev/%s, missing codepage or helper program, or other error.", dev.Name)
	}
	if fsType != "" && fsType != "auto" && fsType != dev.FSType {
		return fmt.Errorf("wrong fs type, bad option, bad superblock on /dev/%s, missing codepage or helper program, or other error.", dev.Name)
	}
	devPath := "/dev/" + dev.Name
	for _, m := range s.mounts {
		if m.Source == devPath {
			return fmt.Errorf("%s already mounted on %s.", devPath, m.Target)
		}
		if m.Target == target {
			return fmt.Errorf("%s is already mounted.", target)
		}
	}
	s.mounts = append(s.mounts, Mount{
		Source:  devPath,
		Target:  target,
		FSType:  dev.FSType,
		Options: "rw,relatime",
		Size:    dev.Size,
		Used:    24 * kib,
	})
	return nil
}

// Unmount detaches the mount named by source or target. The root
// filesystem cannot be unmounted.
func (s *Storage) Unmount(name string) error {
	for i, m := range s.mounts {
		if m.Source != name && m.Target != name {
			continue
		}
		if m.Target == "/" {
			return fmt.Errorf("%s: target is busy.", m.Target)
		}
		s.mounts = append(s.mounts[:i], s.mounts[i+1:]...)
		return nil
	}
	return fmt.Errorf("%s: not mounted.", name)
}
