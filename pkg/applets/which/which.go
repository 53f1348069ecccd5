// Package which implements which and type. Every command is a builtin of
// the simulated shell, but which reports the path a packaged binary would
// have when the virtual filesystem holds one.
package which

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

var binDirs = []string{"/usr/local/bin", "/usr/bin", "/bin", "/usr/sbin", "/sbin"}

// Run prints the location of each command.
func Run(ctx *core.Context, args []string) core.Result {
	var all bool
	operands, err := core.Flags{Bool: map[byte]*bool{'a': &all}}.Parse(args)
	if err != nil {
		return core.UsageError("which", err.Error())
	}
	var lines []string
	failed := false
	for _, name := range operands {
		found := false
		for _, dir := range binDirs {
			p := dir + "/" + name
			if ctx.State.Exists(p) {
				lines = append(lines, p)
				found = true
				if !all {
					break
				}
			}
		}
		if !found && ctx.Registry != nil {
			if _, ok := ctx.Registry.Lookup(name); ok {
				lines = append(lines, name+": shell built-in command")
				found = true
			}
		}
		failed = failed || !found
	}
	if failed {
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(lines))
}

// RunType implements type: builtins first, then files on the search path.
func RunType(ctx *core.Context, args []string) core.Result {
	var lines []string
	failed := false
	for _, name := range args {
		if ctx.Registry != nil {
			if _, ok := ctx.Registry.Lookup(name); ok {
				lines = append(lines, name+" is a shell builtin")
				continue
			}
		}
		found := false
		for _, dir := range binDirs {
			if p := dir + "/" + name; ctx.State.Exists(p) {
				lines = append(lines, name+" is "+p)
				found = true
				break
			}
		}
		if !found {
			lines = append(lines, "type: "+name+": not found")
			failed = true
		}
	}
	if failed {
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(lines))
}
