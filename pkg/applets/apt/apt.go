// Package apt implements apt and apt-get over the simulated package index.
package apt

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/pkgutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const (
	readingLists = "Reading package lists... Done"
	buildingTree = "Building dependency tree... Done"
)

// Run executes the apt command with the given arguments.
//
// Sub-commands:
//
//	update
//	upgrade
//	install PKG...
//	remove|purge PKG...
//	list [--installed]
//	search TERM
//	show PKG...
func Run(ctx *core.Context, args []string) core.Result {
	return run(ctx, "apt", args)
}

// RunGet is apt-get: the same verbs minus list, search and show.
func RunGet(ctx *core.Context, args []string) core.Result {
	return run(ctx, "apt-get", args)
}

func run(ctx *core.Context, name string, args []string) core.Result {
	var installed, upgradable bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'y': nil, 'q': nil},
		Long: map[string]*bool{
			"installed":             &installed,
			"upgradable":            &upgradable,
			"yes":                   nil,
			"assume-yes":            nil,
			"no-install-recommends": nil,
		},
	}.Parse(args)
	if err != nil {
		return core.UsageError(name, err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError(name, "missing command")
	}
	verb, operands := operands[0], operands[1:]
	idx := ctx.System.Packages

	switch verb {
	case "update":
		return core.Ok(strings.Join([]string{
			"Hit:1 http://deb.debian.org/debian bookworm InRelease",
			"Hit:2 http://deb.debian.org/debian-security bookworm-security InRelease",
			readingLists,
			"All packages are up to date.",
		}, "\n"))
	case "upgrade":
		return core.Ok(strings.Join([]string{readingLists, buildingTree, summary(0, 0)}, "\n"))
	case "install":
		return install(ctx, name, operands)
	case "remove", "purge", "autoremove":
		return remove(ctx, name, operands)
	}
	if name == "apt-get" {
		return core.Errorf("E", "Invalid operation %s", verb)
	}

	switch verb {
	case "list":
		if upgradable {
			return core.Ok("Listing... Done")
		}
		lines := []string{"Listing... Done"}
		for _, p := range idx.List(installed) {
			if len(operands) > 0 && !matchAny(p.Name, operands) {
				continue
			}
			lines = append(lines, listLine(p))
		}
		return core.Ok(core.JoinLines(lines))
	case "search":
		if len(operands) == 0 {
			return core.Errorf("E", "You must give at least one search pattern")
		}
		lines := []string{"Sorting... Done", "Full Text Search... Done"}
		for _, p := range idx.Search(strings.Join(operands, " ")) {
			lines = append(lines, listLine(p), "  "+p.Summary, "")
		}
		return core.Ok(strings.TrimSuffix(core.JoinLines(lines), "\n"))
	case "show":
		if len(operands) == 0 {
			return core.Errorf("E", "No packages found")
		}
		var blocks []string
		for _, n := range operands {
			p, ok := idx.Get(n)
			if !ok {
				return core.Errorf("E", "No packages found")
			}
			blocks = append(blocks, pkgutil.Control(p))
		}
		return core.Ok(strings.Join(blocks, "\n\n"))
	}
	return core.Errorf("E", "Invalid operation %s", verb)
}

func install(ctx *core.Context, name string, names []string) core.Result {
	if len(names) == 0 {
		return core.Ok(strings.Join([]string{readingLists, buildingTree, summary(0, 0)}, "\n"))
	}
	idx := ctx.System.Packages
	for _, n := range names {
		if _, ok := idx.Get(n); !ok {
			return core.Result{
				Output: strings.Join([]string{readingLists, buildingTree, "E: " + sysstate.ErrNoPackage(n).Error()}, "\n"),
				Status: core.StatusError,
			}
		}
	}

	lines := []string{readingLists, buildingTree}
	var added []sysstate.Package
	for _, n := range names {
		p, _ := idx.Get(n)
		if p.Installed {
			lines = append(lines, fmt.Sprintf("%s is already the newest version (%s).", p.Name, p.Version))
			continue
		}
		pkgs, err := idx.Install(n)
		if err != nil {
			return core.Errorf("E", "%v", err)
		}
		added = append(added, pkgs...)
	}
	if len(added) == 0 {
		return core.Ok(core.JoinLines(append(lines, summary(0, 0))))
	}

	st, err := pkgutil.Install(ctx.State, added)
	if err != nil {
		return core.Errorf(name, "%v", err)
	}
	lines = append(lines, "The following NEW packages will be installed:", "  "+joinNames(added), summary(len(added), 0))
	for _, p := range added {
		lines = append(lines, fmt.Sprintf("Setting up %s (%s) ...", p.Name, p.Version))
	}
	ctx.Log.Debug("%s: installed %s", name, joinNames(added))
	return core.Changed(core.JoinLines(lines), st)
}

func remove(ctx *core.Context, name string, names []string) core.Result {
	idx := ctx.System.Packages
	for _, n := range names {
		if _, ok := idx.Get(n); !ok {
			return core.Result{
				Output: strings.Join([]string{readingLists, buildingTree, "E: " + sysstate.ErrNoPackage(n).Error()}, "\n"),
				Status: core.StatusError,
			}
		}
	}

	lines := []string{readingLists, buildingTree}
	var removed []sysstate.Package
	for _, n := range names {
		p, _ := idx.Get(n)
		if !p.Installed {
			lines = append(lines, fmt.Sprintf("Package '%s' is not installed, so not removed", n))
			continue
		}
		if _, err := idx.Remove(n); err != nil {
			return core.Errorf("E", "%v", err)
		}
		removed = append(removed, p)
	}
	if len(removed) == 0 {
		return core.Ok(core.JoinLines(append(lines, summary(0, 0))))
	}

	st := ctx.State
	var err error
	for _, p := range removed {
		if st, err = pkgutil.Remove(st, p); err != nil {
			return core.Errorf(name, "%v", err)
		}
	}
	lines = append(lines, "The following packages will be REMOVED:", "  "+joinNames(removed), summary(0, len(removed)))
	for _, p := range removed {
		lines = append(lines, fmt.Sprintf("Removing %s (%s) ...", p.Name, p.Version))
	}
	ctx.Log.Debug("%s: removed %s", name, joinNames(removed))
	return core.Changed(core.JoinLines(lines), st)
}

func summary(installed, removed int) string {
	return fmt.Sprintf("0 upgraded, %d newly installed, %d to remove and 0 not upgraded.", installed, removed)
}

func joinNames(pkgs []sysstate.Package) string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Name
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func matchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

func listLine(p sysstate.Package) string {
	if p.Installed {
		return fmt.Sprintf("%s/stable,now %s %s [installed]", p.Name, p.Version, p.Arch)
	}
	return fmt.Sprintf("%s/stable %s %s", p.Name, p.Version, p.Arch)
}
