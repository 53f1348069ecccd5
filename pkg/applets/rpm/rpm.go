// Package rpm implements rpm queries over the simulated package index.
package rpm

import (
	"github.com/rcarmo/go-shellsim/pkg/applets/pkgutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the rpm command with the given arguments.
//
// Supported flags:
//
//	-q PKG...   Print name-version-release.arch
//	-a          Query all installed packages
//	-i          Print package information
//	-l          List package files
//	-f FILE     Query the package owning FILE
func Run(ctx *core.Context, args []string) core.Result {
	var query, all, info, files, owner bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'q': &query, 'a': &all, 'i': &info, 'l': &files, 'f': &owner},
		Long: map[string]*bool{"query": &query, "all": &all, "info": &info, "list": &files, "file": &owner},
	}.Parse(args)
	if err != nil {
		return core.UsageError("rpm", err.Error())
	}
	if !query {
		return core.UsageError("rpm", "no operation specified")
	}
	idx := ctx.System.Packages

	if owner {
		return ownerOf(ctx, operands)
	}
	var out, errs []string
	if all {
		for _, p := range idx.List(true) {
			out = append(out, pkgutil.RPMName(p))
		}
		return core.Ok(core.JoinLines(out))
	}
	if len(operands) == 0 {
		return core.UsageError("rpm", "no arguments given for query")
	}
	for _, name := range operands {
		p, ok := idx.Get(name)
		if !ok || !p.Installed {
			errs = append(errs, "package "+name+" is not installed")
			continue
		}
		switch {
		case info:
			out = append(out, pkgutil.Info(p))
		case files:
			out = append(out, p.Files...)
		default:
			out = append(out, pkgutil.RPMName(p))
		}
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(append(out, errs...)), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(out))
}

func ownerOf(ctx *core.Context, files []string) core.Result {
	if len(files) == 0 {
		return core.UsageError("rpm", "no arguments given for query")
	}
	var out []string
	failed := false
	for _, f := range files {
		abs := ctx.State.Abs(f)
		found := false
		for _, p := range ctx.System.Packages.List(true) {
			for _, owned := range p.Files {
				if owned == abs {
					out = append(out, pkgutil.RPMName(p))
					found = true
				}
			}
		}
		if !found {
			out = append(out, "file "+abs+" is not owned by any package")
			failed = true
		}
	}
	if failed {
		return core.Result{Output: core.JoinLines(out), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(out))
}
