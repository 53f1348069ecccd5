// Package dnf implements dnf (and its yum alias) over the simulated
// package index.
package dnf

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/pkgutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const metadata = "Last metadata expiration check: 0:12:03 ago on Mon 15 Jan 2024 09:05:00 AM UTC."

// Run executes the dnf command with the given arguments.
//
// Sub-commands:
//
//	install PKG...
//	remove|erase PKG...
//	list [installed|available]
//	search TERM...
//	info PKG...
//	makecache, check-update
func Run(ctx *core.Context, args []string) core.Result {
	operands, err := core.Flags{
		Bool: map[byte]*bool{'y': nil, 'q': nil},
		Long: map[string]*bool{"assumeyes": nil, "quiet": nil},
	}.Parse(args)
	if err != nil {
		return core.UsageError("dnf", err.Error())
	}
	if len(operands) == 0 {
		return core.Errorf("Error", "Need to pass a list of commands to dnf")
	}
	verb, operands := operands[0], operands[1:]
	idx := ctx.System.Packages

	switch verb {
	case "install":
		return install(ctx, operands)
	case "remove", "erase":
		return remove(ctx, operands)
	case "list":
		return list(idx, operands)
	case "search":
		if len(operands) == 0 {
			return core.Errorf("Error", "Need at least one search term")
		}
		var lines []string
		for _, p := range idx.Search(strings.Join(operands, " ")) {
			lines = append(lines, p.Name+"."+pkgutil.RPMArch(p)+" : "+p.Summary)
		}
		if len(lines) == 0 {
			return core.Result{Output: metadata + "\nNo matches found.", Status: core.StatusError}
		}
		return core.Ok(core.JoinLines(append([]string{metadata}, lines...)))
	case "info":
		var blocks []string
		for _, name := range operands {
			p, ok := idx.Get(name)
			if !ok {
				return core.Errorf("Error", "No matching Packages to list")
			}
			blocks = append(blocks, pkgutil.Info(p))
		}
		if len(blocks) == 0 {
			return core.Errorf("Error", "No matching Packages to list")
		}
		return core.Ok(strings.Join(blocks, "\n\n"))
	case "makecache", "check-update", "upgrade", "update":
		return core.Ok(metadata + "\nDependencies resolved.\nNothing to do.\nComplete!")
	}
	return core.Errorf("No such command", "%s. Please use /usr/bin/dnf --help", verb)
}

func install(ctx *core.Context, names []string) core.Result {
	idx := ctx.System.Packages
	if len(names) == 0 {
		return core.Errorf("Error", "Need to pass a list of pkgs to install")
	}
	lines := []string{metadata}
	for _, n := range names {
		if _, ok := idx.Get(n); !ok {
			lines = append(lines, "No match for argument: "+n, "Error: Unable to find a match: "+n)
			return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
		}
	}
	var added []sysstate.Package
	for _, n := range names {
		p, _ := idx.Get(n)
		if p.Installed {
			lines = append(lines, "Package "+pkgutil.RPMName(p)+" is already installed.")
			continue
		}
		pkgs, err := idx.Install(n)
		if err != nil {
			return core.Errorf("Error", "%v", err)
		}
		added = append(added, pkgs...)
	}
	lines = append(lines, "Dependencies resolved.")
	if len(added) == 0 {
		return core.Ok(core.JoinLines(append(lines, "Nothing to do.", "Complete!")))
	}
	st, err := pkgutil.Install(ctx.State, added)
	if err != nil {
		return core.Errorf("dnf", "%v", err)
	}
	lines = append(lines, "", "Installed:")
	for _, p := range added {
		lines = append(lines, "  "+pkgutil.RPMName(p))
	}
	ctx.Log.Debug("dnf: installed %d packages", len(added))
	return core.Changed(core.JoinLines(append(lines, "", "Complete!")), st)
}

func remove(ctx *core.Context, names []string) core.Result {
	idx := ctx.System.Packages
	if len(names) == 0 {
		return core.Errorf("Error", "Need to pass a list of pkgs to remove")
	}
	var lines []string
	var removed []sysstate.Package
	for _, n := range names {
		p, ok := idx.Get(n)
		if !ok || !p.Installed {
			lines = append(lines, "No match for argument: "+n)
			continue
		}
		if _, err := idx.Remove(n); err != nil {
			return core.Errorf("Error", "%v", err)
		}
		removed = append(removed, p)
	}
	if len(removed) == 0 {
		lines = append(lines, "Error: No packages marked for removal.")
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	st := ctx.State
	var err error
	for _, p := range removed {
		if st, err = pkgutil.Remove(st, p); err != nil {
			return core.Errorf("dnf", "%v", err)
		}
	}
	lines = append(lines, "Dependencies resolved.", "", "Removed:")
	for _, p := range removed {
		lines = append(lines, "  "+pkgutil.RPMName(p))
	}
	ctx.Log.Debug("dnf: removed %d packages", len(removed))
	return core.Changed(core.JoinLines(append(lines, "", "Complete!")), st)
}

func list(idx *sysstate.PackageIndex, operands []string) core.Result {
	scope := "all"
	if len(operands) > 0 {
		scope = operands[0]
	}
	var sections []string
	if scope == "all" || scope == "installed" {
		sections = append(sections, section("Installed Packages", idx.List(true), "@System"))
	}
	if scope == "all" || scope == "available" {
		var avail []sysstate.Package
		for _, p := range idx.List(false) {
			if !p.Installed {
				avail = append(avail, p)
			}
		}
		sections = append(sections, section("Available Packages", avail, "baseos"))
	}
	if sections == nil {
		return core.Errorf("Error", "No matching Packages to list")
	}
	return core.Ok(strings.Join(sections, "\n"))
}

func section(title string, pkgs []sysstate.Package, repo string) string {
	rows := make([][]any, len(pkgs))
	for i, p := range pkgs {
		rows[i] = []any{p.Name + "." + pkgutil.RPMArch(p), pkgutil.UpstreamVersion(p.Version), repo}
	}
	return core.Table([]any{title, "", ""}, rows)
}
