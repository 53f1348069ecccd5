package sysstate

import (
	"fmt"
	"sort"
	"strings"
)

// Package is one entry of the package index.
type Package struct {
	Name        string
	Version     string
	Arch        string
	Summary     string
	Installed   bool
	Files       []string
	Size        int
	Depends     []string
	Maintainers string
}

// PackageIndex is the closed-world repository plus the installed set.
type PackageIndex struct {
	pkgs map[string]*Package
}

func newPackageIndex() *PackageIndex {
	idx := &PackageIndex{pkgs: map[string]*Package{}}
	for _, p := range []Package{
		{Name: "bash", Version: "5.2.15-2", Summary: "GNU Bourne Again SHell", Installed: true, Size: 7164},
		{Name: "coreutils", Version: "9.1-1", Summary: "GNU core utilities", Installed: true, Size: 18062},
		{Name: "curl", Version: "7.88.1-10", Summary: "command line tool for transferring data with URL syntax", Installed: true, Size: 500, Depends: []string{"libcurl4"}},
		{Name: "git", Version: "1:2.39.2-1", Summary: "fast, scalable, distributed revision control system", Size: 36224, Depends: []string{"libcurl4", "perl"}},
		{Name: "htop", Version: "3.2.2-2", Summary: "interactive processes viewer", Size: 424},
		{Name: "jq", Version: "1.6-2.1", Summary: "lightweight and flexible command-line JSON processor", Size: 102},
		{Name: "libcurl4", Version: "7.88.1-10", Summary: "easy-to-use client-side URL transfer library", Installed: true, Size: 1134},
		{Name: "nginx", Version: "1.22.1-9", Summary: "small, powerful, scalable web/proxy server", Installed: true, Size: 1228},
		{Name: "perl", Version: "5.36.0-7", Summary: "Larry Wall's Practical Extraction and Report Language", Installed: true, Size: 682},
		{Name: "python3", Version: "3.11.2-1", Summary: "interactive high-level object-oriented language", Installed: true, Size: 92},
		{Name: "tree", Version: "2.1.0-1", Summary: "displays an indented directory tree, in color", Size: 118},
		{Name: "vim", Version: "2:9.0.1378-2", Summary: "Vi IMproved - enhanced vi editor", Installed: true, Size: 3958},
	} {
		p.Arch = "amd64"
		p.Maintainers = "Debian Developers <debian-devel@lists.debian.org>"
		p.Files = []string{"/usr/bin/" + p.Name, "/usr/share/doc/" + p.Name + "/copyright"}
		idx.pkgs[p.Name] = &p
	}
	return idx
}

// ErrNoPackage is returned for a name the index does not know.
type ErrNoPackage string

func (e ErrNoPackage) Error() string { return fmt.Sprintf("Unable to locate package %s", string(e)) }

// Get returns a copy of the package.
func (idx *PackageIndex) Get(name string) (Package, bool) {
	p, ok := idx.pkgs[name]
	if !ok {
		return Package{}, false
	}
	return *p, true
}

// List returns packages in name order, only installed ones when
// installedOnly is set.
func (idx *PackageIndex) List(installedOnly bool) []Package {
	var out []Package
	for _, p := range idx.pkgs {
		if installedOnly && !p.Installed {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Search matches term against names and summaries, case-insensitively.
func (idx *PackageIndex) Search(term string) []Package {
	term = strings.ToLower(term)
	var out []Package
	for _, p := range idx.List(false) {
		if strings.Contains(p.Name, term) || strings.Contains(strings.ToLower(p.Summary), term) {
			out = append(out, p)
		}
	}
	return out
}

// Install marks name and its missing dependencies installed. It returns the
// packages that were newly installed, dependencies first.
func (idx *PackageIndex) Install(name string) ([]Package, error) {
	p, ok := idx.pkgs[name]
	if !ok {
		return nil, ErrNoPackage(name)
	}
	var added []Package
	for _, dep := range p.Depends {
		if d, ok := idx.pkgs[dep]; ok && !d.Installed {
			d.Installed = true
			added = append(added, *d)
		}
	}
	if !p.Installed {
		p.Installed = true
		added = append(added, *p)
	}
	return added, nil
}

// Remove marks name not installed. It reports whether it was installed.
func (idx *PackageIndex) Remove(name string) (bool, error) {
	p, ok := idx.pkgs[name]
	if !ok {
		return false, ErrNoPackage(name)
	}
	was := p.Installed
	p.Installed = false
	return was, nil
}
