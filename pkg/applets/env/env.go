// Package env implements the env command.
package env

import (
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/export"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the environment as NAME=value lines, or runs a command with
// NAME=value assignments added to a copy of it.
//
// Supported flags:
//
//	-i      Start from an empty environment
//	-u NAME Remove NAME from the environment
func Run(ctx *core.Context, args []string) core.Result {
	env := map[string]string{}
	i := 0
	clean := false
	var unset []string
flags:
	for ; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-i" || a == "-" || a == "--ignore-environment":
			clean = true
		case a == "-u":
			if i+1 >= len(args) {
				return core.UsageError("env", "option requires an argument -- 'u'")
			}
			i++
			unset = append(unset, args[i])
		case strings.HasPrefix(a, "-") && a != "--":
			return core.UsageError("env", "invalid option -- '"+strings.TrimLeft(a, "-")+"'")
		default:
			break flags
		}
	}
	if !clean {
		for k, v := range ctx.Env {
			env[k] = v
		}
	}
	for _, name := range unset {
		delete(env, name)
	}
	if i < len(args) && args[i] == "--" {
		i++
	}
	for ; i < len(args); i++ {
		name, value, ok := strings.Cut(args[i], "=")
		if !ok || !export.ValidName(name) {
			break
		}
		env[name] = value
	}

	if i == len(args) {
		lines := make([]string, 0, len(env))
		for k, v := range env {
			lines = append(lines, k+"="+v)
		}
		sort.Strings(lines)
		return core.Ok(core.JoinLines(lines))
	}
	if ctx.Registry == nil {
		return core.Errorf("env", "'%s': No such file or directory", args[i])
	}
	if _, ok := ctx.Registry.Lookup(args[i]); !ok {
		return core.Errorf("env", "'%s': No such file or directory", args[i])
	}
	sub := *ctx
	sub.Env = env
	return ctx.Registry.Dispatch(&sub, args[i], args[i+1:])
}
