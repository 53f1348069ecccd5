// Package dpkg implements the query side of dpkg.
package dpkg

import (
	"path"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/pkgutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

var listHeader = []string{
	"Desired=Unknown/Install/Remove/Purge/Hold",
	"| Status=Not/Inst/Conf-files/Unpacked/halF-conf/Half-inst/trig-aWait/Trig-pend",
	"|/ Err?=(none)/Reinst-required (Status,Err: uppercase=bad)",
}

// Run executes the dpkg command with the given arguments.
//
// Supported actions:
//
//	-l [PATTERN...]   List packages
//	-s PKG...         Show package status
//	-L PKG...         List files owned by a package
//	-S PATTERN...     Find the package owning a file
func Run(ctx *core.Context, args []string) core.Result {
	var list, status, files, search bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'l': &list, 's': &status, 'L': &files, 'S': &search},
		Long: map[string]*bool{"list": &list, "status": &status, "listfiles": &files, "search": &search},
	}.Parse(args)
	if err != nil {
		return core.UsageError("dpkg", err.Error())
	}
	idx := ctx.System.Packages

	switch {
	case list:
		return listPackages(idx, operands)
	case status, files, search:
		if len(operands) == 0 {
			return core.Errorf("dpkg-query", "--%s needs at least one package name argument", action(status, files))
		}
	default:
		return core.UsageError("dpkg", "need an action option")
	}

	if search {
		return searchFiles(idx, operands)
	}
	var blocks, errs []string
	for _, name := range operands {
		p, ok := idx.Get(name)
		switch {
		case !ok || !p.Installed && files:
			errs = append(errs, "dpkg-query: package '"+name+"' is not installed")
		case !p.Installed:
			errs = append(errs, "dpkg-query: package '"+name+"' is not installed and no information is available")
		case files:
			blocks = append(blocks, core.JoinLines(pkgutil.Paths(p)))
		default:
			blocks = append(blocks, pkgutil.Control(p))
		}
	}
	return result(blocks, errs, status)
}

func action(status, files bool) string {
	switch {
	case status:
		return "status"
	case files:
		return "listfiles"
	}
	return "search"
}

func listPackages(idx *sysstate.PackageIndex, patterns []string) core.Result {
	var rows [][]any
	var errs []string
	if len(patterns) == 0 {
		for _, p := range idx.List(true) {
			rows = append(rows, row(p))
		}
	}
	for _, pat := range patterns {
		found := false
		for _, p := range idx.List(false) {
			if ok, _ := path.Match(pat, p.Name); ok {
				rows = append(rows, row(p))
				found = true
			}
		}
		if !found {
			errs = append(errs, "dpkg-query: no packages found matching "+pat)
		}
	}
	var out []string
	if len(rows) > 0 {
		out = append(append(out, listHeader...), core.Table([]any{"||/", "Name", "Version", "Architecture", "Description"}, rows))
	}
	return result(out, errs, false)
}

func row(p sysstate.Package) []any {
	if p.Installed {
		return []any{"ii", p.Name, p.Version, p.Arch, p.Summary}
	}
	return []any{"un", p.Name, "<none>", "<none>", "(no description available)"}
}

func searchFiles(idx *sysstate.PackageIndex, patterns []string) core.Result {
	var out, errs []string
	for _, pat := range patterns {
		found := false
		for _, p := range idx.List(true) {
			for _, f := range p.Files {
				if f == pat || strings.Contains(f, pat) {
					out = append(out, p.Name+": "+f)
					found = true
				}
			}
		}
		if !found {
			errs = append(errs, "dpkg-query: no path found matching pattern "+pat)
		}
	}
	return result(out, errs, false)
}

func result(out, errs []string, blank bool) core.Result {
	sep := "\n"
	if blank {
		sep = "\n\n"
	}
	text := strings.Join(out, sep)
	if len(errs) == 0 {
		return core.Ok(text)
	}
	if text != "" {
		errs = append([]string{text}, errs...)
	}
	return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
}
