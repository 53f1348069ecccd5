// Package pkgutil holds what the package managers share: laying package
// files into the virtual filesystem and the naming schemes they print.
package pkgutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Install writes every file of pkgs, creating root-owned parent
// directories as needed. Executables under a bin directory get mode 0755.
func Install(st *vfs.State, pkgs []sysstate.Package) (*vfs.State, error) {
	var err error
	for _, p := range pkgs {
		for _, f := range p.Files {
			if st, err = mkdirs(st, vfs.Dir(f)); err != nil {
				return nil, err
			}
			if st, err = st.WriteFile(f, script(p, f), false); err != nil {
				return nil, err
			}
			mode := vfs.FromOctal(0o644)
			if strings.Contains(f, "/bin/") {
				mode = vfs.FromOctal(0o755)
			}
			if st, err = st.Chmod(f, mode, false); err != nil {
				return nil, err
			}
			if st, err = st.Chown(f, "root", "root", false); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}

func script(p sysstate.Package, file string) string {
	if strings.Contains(file, "/bin/") {
		return fmt.Sprintf("#!/bin/sh\n# %s %s\n", p.Name, p.Version)
	}
	return fmt.Sprintf("%s\n\nThis package is maintained by %s.\n", p.Summary, p.Maintainers)
}

func mkdirs(st *vfs.State, dir string) (*vfs.State, error) {
	cur := "/"
	for _, seg := range vfs.Split(dir) {
		cur = vfs.Join(cur, seg)
		if st.Exists(cur) {
			continue
		}
		var err error
		if st, err = st.Mkdir(cur, false); err != nil {
			return nil, err
		}
		if st, err = st.Chown(cur, "root", "root", false); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Remove deletes p's files. Files already gone are skipped.
func Remove(st *vfs.State, p sysstate.Package) (*vfs.State, error) {
	var err error
	for _, f := range p.Files {
		if st, err = st.Remove(f, false, true); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Paths lists p's files with every parent directory, the way dpkg -L does.
func Paths(p sysstate.Package) []string {
	seen := map[string]bool{}
	for _, f := range p.Files {
		for d := vfs.Dir(f); d != "/"; d = vfs.Dir(d) {
			seen[d] = true
		}
		seen[f] = true
	}
	out := make([]string, 0, len(seen)+1)
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return append([]string{"/."}, out...)
}

// UpstreamVersion strips a Debian epoch ("1:2.39.2-1" is "2.39.2-1").
func UpstreamVersion(version string) string {
	if _, after, ok := strings.Cut(version, ":"); ok {
		return after
	}
	return version
}

// RPMName is name-version.arch as rpm and dnf print it.
func RPMName(p sysstate.Package) string {
	return p.Name + "-" + UpstreamVersion(p.Version) + "." + RPMArch(p)
}

// RPMArch maps Debian architecture names to rpm ones.
func RPMArch(p sysstate.Package) string {
	if p.Arch == "amd64" {
		return "x86_64"
	}
	return p.Arch
}

// Control renders the control record apt show and dpkg -s print.
func Control(p sysstate.Package) string {
	lines := []string{"Package: " + p.Name}
	if p.Installed {
		lines = append(lines, "Status: install ok installed")
	}
	lines = append(lines,
		"Priority: optional",
		fmt.Sprintf("Installed-Size: %d", p.Size),
		"Maintainer: "+p.Maintainers,
		"Architecture: "+p.Arch,
		"Version: "+p.Version,
	)
	if len(p.Depends) > 0 {
		lines = append(lines, "Depends: "+strings.Join(p.Depends, ", "))
	}
	return strings.Join(append(lines, "Description: "+p.Summary), "\n")
}

// Info renders the block dnf info and rpm -qi print for p.
func Info(p sysstate.Package) string {
	version, release := splitRelease(UpstreamVersion(p.Version))
	repo := "baseos"
	if p.Installed {
		repo = "@System"
	}
	return strings.Join([]string{
		field("Name", p.Name),
		field("Version", version),
		field("Release", release),
		field("Architecture", RPMArch(p)),
		field("Size", fmt.Sprintf("%d k", p.Size)),
		field("Repository", repo),
		field("Summary", p.Summary),
	}, "\n")
}

func field(name, value string) string {
	return fmt.Sprintf("%-13s: %s", name, value)
}

func splitRelease(v string) (string, string) {
	if i := strings.LastIndexByte(v, '-'); i > 0 {
		return v[:i], v[i+1:]
	}
	return v, "0"
}
