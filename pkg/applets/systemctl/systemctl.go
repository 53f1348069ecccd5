// Package systemctl implements a systemctl subset over the simulated
// service table.
package systemctl

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const unitDir = "/lib/systemd/system"

// Run executes the systemctl command with the given arguments.
//
// Verbs:
//
//	start|stop|restart|reload UNIT...
//	enable|disable UNIT...
//	status UNIT...
//	is-active|is-enabled UNIT...
//	list-units [--all] [--type=service]
//	list-unit-files
func Run(ctx *core.Context, args []string) core.Result {
	var all bool
	var unitType string
	operands, err := core.Flags{
		Bool:      map[byte]*bool{'a': &all, 'q': nil},
		Long:      map[string]*bool{"all": &all, "no-pager": nil, "quiet": nil, "now": nil},
		LongValue: map[string]*string{"type": &unitType},
		Value:     map[byte]*string{'t': &unitType},
	}.Parse(args)
	if err != nil {
		return core.UsageError("systemctl", err.Error())
	}
	if unitType != "" && unitType != "service" {
		return core.Ok("0 loaded units listed.")
	}
	verb := "list-units"
	if len(operands) > 0 {
		verb, operands = operands[0], operands[1:]
	}
	services := ctx.System.Services

	switch verb {
	case "list-units":
		return core.Ok(listUnits(services, all))
	case "list-unit-files":
		return core.Ok(listUnitFiles(services))
	case "start", "stop", "restart", "reload", "enable", "disable", "status", "is-active", "is-enabled":
	default:
		return core.Errorf("systemctl", "Unknown command verb '%s'.", verb)
	}
	if len(operands) == 0 {
		return core.Errorf("systemctl", "Too few arguments.")
	}

	var out, errs []string
	for _, name := range operands {
		unit := sysstate.UnitName(name)
		svc, ok := services.Get(unit)
		if !ok {
			switch verb {
			case "status":
				errs = append(errs, "Unit "+unit+".service could not be found.")
			case "is-active", "is-enabled":
				out = append(out, "inactive")
			default:
				errs = append(errs, fmt.Sprintf("Failed to %s %s.service: %v", verb, unit, sysstate.ErrNoUnit(unit)))
			}
			continue
		}
		switch verb {
		case "start":
			err = services.Start(unit)
		case "stop":
			err = services.Stop(unit)
		case "restart", "reload":
			err = services.Restart(unit)
		case "enable":
			if err = services.SetEnabled(unit, true); err == nil && !svc.Enabled {
				out = append(out, fmt.Sprintf("Created symlink /etc/systemd/system/multi-user.target.wants/%s.service → %s/%s.service.", unit, unitDir, unit))
			}
		case "disable":
			if err = services.SetEnabled(unit, false); err == nil && svc.Enabled {
				out = append(out, fmt.Sprintf("Removed /etc/systemd/system/multi-user.target.wants/%s.service.", unit))
			}
		case "status":
			out = append(out, status(ctx, services, unit))
		case "is-active":
			out = append(out, activeState(services, unit))
		case "is-enabled":
			out = append(out, enabledState(svc))
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to %s %s.service: %v", verb, unit, err))
			continue
		}
		ctx.Log.Debug("systemctl %s %s", verb, unit)
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(append(out, errs...)), Status: core.StatusError}
	}
	return core.Ok(strings.Join(out, "\n"))
}

func activeState(services *sysstate.ServiceTable, unit string) string {
	if services.Active(unit) {
		return "active"
	}
	return "inactive"
}

func enabledState(svc sysstate.Service) string {
	if svc.Enabled {
		return "enabled"
	}
	return "disabled"
}

func status(ctx *core.Context, services *sysstate.ServiceTable, unit string) string {
	svc, _ := services.Get(unit)
	dot := "○"
	active := "inactive (dead)"
	if services.Active(unit) {
		dot = "●"
		active = "active (running)"
	}
	lines := []string{
		fmt.Sprintf("%s %s.service - %s", dot, unit, svc.Description),
		fmt.Sprintf("     Loaded: loaded (%s/%s.service; %s; vendor preset: enabled)", unitDir, unit, enabledState(svc)),
		"     Active: " + active,
	}
	if services.Active(unit) {
		proc, _ := ctx.System.Processes.Get(svc.PID)
		lines = append(lines, fmt.Sprintf("   Main PID: %d (%s)", svc.PID, proc.Name()))
	}
	entries := ctx.System.Journal.Query(unit, sysstate.PriDebug, 10)
	if len(entries) > 0 {
		lines = append(lines, "")
		for _, e := range entries {
			lines = append(lines, ctx.System.Journal.Format(e))
		}
	}
	return core.JoinLines(lines)
}

func listUnits(services *sysstate.ServiceTable, all bool) string {
	var rows [][]any
	for _, svc := range services.List() {
		active := services.Active(svc.Name)
		if !active && !all {
			continue
		}
		state, sub := "active", "running"
		if !active {
			state, sub = "inactive", "dead"
		}
		rows = append(rows, []any{svc.Name + ".service", "loaded", state, sub, svc.Description})
	}
	out := core.Table([]any{"UNIT", "LOAD", "ACTIVE", "SUB", "DESCRIPTION"}, rows)
	return out + fmt.Sprintf("\n\n%d loaded units listed.", len(rows))
}

func listUnitFiles(services *sysstate.ServiceTable) string {
	var rows [][]any
	for _, svc := range services.List() {
		rows = append(rows, []any{svc.Name + ".service", enabledState(svc)})
	}
	out := core.Table([]any{"UNIT FILE", "STATE"}, rows)
	return out + fmt.Sprintf("\n\n%d unit files listed.", len(rows))
}
