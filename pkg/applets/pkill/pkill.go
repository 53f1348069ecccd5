// Package pkill implements pkill using pgrep matching.
package pkill

import (
	"github.com/rcarmo/go-shellsim/pkg/applets/pgrep"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run signals every process pgrep would list. A leading -SIGNAL picks the
// signal; the default is TERM.
func Run(ctx *core.Context, args []string) core.Result {
	return pgrep.Kill(ctx, args)
}
