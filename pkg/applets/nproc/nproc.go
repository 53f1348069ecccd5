// Package nproc implements the nproc command.
package nproc

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the nproc command with the given arguments.
//
// Supported flags:
//
//	--all           Print the number of installed processors
//	--ignore=N      Exclude N processors from the count
//
// Prints the number of available processing units, never less than one.
func Run(ctx *core.Context, args []string) core.Result {
	ignore := 0
	for _, arg := range args {
		if arg == "--all" {
			continue
		}
		if strings.HasPrefix(arg, "--ignore=") {
			value := strings.TrimPrefix(arg, "--ignore=")
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return core.UsageError("nproc", "invalid number: '"+value+"'")
			}
			ignore = n
			continue
		}
		if strings.HasPrefix(arg, "-") {
			return core.UsageError("nproc", "invalid option -- '"+strings.TrimPrefix(arg, "-")+"'")
		}
		return core.UsageError("nproc", "extra operand '"+arg+"'")
	}
	count := sysstate.CPUs - ignore
	if count < 1 {
		count = 1
	}
	return core.Ok(strconv.Itoa(count))
}
