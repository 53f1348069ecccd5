// Package uptime implements the uptime command.
package uptime

import (
	"fmt"
	"strings"

	pluralize "github.com/gertd/go-pluralize"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/timeutil"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

var words = pluralize.NewClient()

// Run executes the uptime command. It displays the simulated time, how long
// the machine has been up, the number of logged-in users, and load averages
// derived from the process table.
//
//	-p  Pretty format ("up 3 hours, 17 minutes")
//	-s  Boot time
func Run(ctx *core.Context, args []string) core.Result {
	var pretty, since bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'p': &pretty, 's': &since},
		Long: map[string]*bool{"pretty": &pretty, "since": &since},
	}.Parse(args)
	if err != nil {
		return core.UsageError("uptime", err.Error())
	}
	if len(operands) > 0 {
		return core.UsageError("uptime", "extra operand '"+operands[0]+"'")
	}
	clock := ctx.System.Clock
	up := clock.Uptime()
	switch {
	case since:
		return core.Ok(sysstate.Epoch.Format("2006-01-02 15:04:05"))
	case pretty:
		return core.Ok(prettyUptime(int(up.Minutes())))
	}
	return core.Ok(Summary(ctx.System))
}

// Summary is the classic uptime line, shared with w and top.
func Summary(sys *sysstate.System) string {
	procs := sys.Processes.List()
	load := loadAverage(procs)
	return fmt.Sprintf("%s up %s,  %s,  load average: %.2f, %.2f, %.2f",
		sys.Clock.Now().Format("15:04:05"),
		timeutil.FormatUptime(sys.Clock.Uptime()),
		words.Pluralize("user", loggedIn(sys), true),
		load, load*0.6, load*0.3,
	)
}

func prettyUptime(minutes int) string {
	var parts []string
	if d := minutes / (60 * 24); d > 0 {
		parts = append(parts, words.Pluralize("day", d, true))
	}
	if h := (minutes / 60) % 24; h > 0 {
		parts = append(parts, words.Pluralize("hour", h, true))
	}
	if m := minutes % 60; m > 0 || len(parts) == 0 {
		parts = append(parts, words.Pluralize("minute", m, true))
	}
	return "up " + strings.Join(parts, ", ")
}

func loggedIn(sys *sysstate.System) int {
	seen := map[string]bool{}
	for _, sess := range sys.Processes.Sessions() {
		seen[sess.User] = true
	}
	return len(seen)
}

// loadAverage turns the summed CPU share into a run-queue estimate.
func loadAverage(procs []sysstate.Process) float64 {
	total := 0.0
	for _, p := range procs {
		total += p.CPU
	}
	return total / 25
}
