// Package cp implements the cp command.
package cp

import (
	"errors"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/fileutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Options holds cp command options.
type Options struct {
	Recursive bool // -r, -R, -a: copy directories recursively
	Verbose   bool // -v: explain what is being done
	NoClobber bool // -n: do not overwrite an existing file
}

// Run executes the cp command with the given arguments.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	var force bool
	operands, err := core.Flags{
		Bool:    map[byte]*bool{'r': &opts.Recursive, 'v': &opts.Verbose, 'n': &opts.NoClobber, 'f': &force},
		Aliases: map[byte]byte{'R': 'r', 'a': 'r'},
		Long:    map[string]*bool{"recursive": &opts.Recursive, "verbose": &opts.Verbose},
	}.Parse(args)
	if err != nil {
		return core.UsageError("cp", err.Error())
	}
	sources, dest, res := fileutil.SplitOperands("cp", operands)
	if res.Failed() {
		return res
	}
	st := ctx.State
	destIsDir, res := fileutil.ResolveDest(st, "cp", sources, dest)
	if res.Failed() {
		return res
	}

	var out, errs []string
	for _, src := range sources {
		node, err := st.Stat(src)
		if err != nil {
			errs = append(errs, "cp: cannot stat '"+src+"': "+vfs.Reason(err))
			continue
		}
		if node.IsDir() && !opts.Recursive {
			errs = append(errs, "cp: -r not specified; omitting directory '"+src+"'")
			continue
		}
		target := fileutil.TargetPath(src, dest, destIsDir)
		if opts.NoClobber && st.Exists(target) {
			continue
		}
		next, err := st.Copy(src, dest, opts.Recursive)
		if err != nil {
			errs = append(errs, copyError(src, target, err))
			continue
		}
		st = next
		if opts.Verbose {
			out = append(out, "'"+src+"' -> '"+target+"'")
		}
	}
	output := strings.Join(append(errs, out...), "\n")
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}

func copyError(src, target string, err error) string {
	if errors.Is(err, vfs.ErrInvalid) {
		return "cp: cannot copy '" + src + "' to '" + target + "': source and destination overlap"
	}
	return "cp: cannot create '" + target + "': " + vfs.Reason(err)
}
