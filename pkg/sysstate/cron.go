package sysstate

import (
	"fmt"
	"strconv"
	"strings"
)

// CronTable stores each user's crontab as its lines.
type CronTable struct {
	tabs map[string][]string
}

func newCronTable() *CronTable {
	return &CronTable{tabs: map[string][]string{
		"root": {"17 * * * * cd / && run-parts --report /etc/cron.hourly"},
	}}
}

// Lines returns user's crontab, or ok=false when there is none.
func (c *CronTable) Lines(user string) ([]string, bool) {
	lines, ok := c.tabs[user]
	return append([]string(nil), lines...), ok
}

// Install validates and replaces user's crontab. Blank lines, comments and
// VAR=value assignments are kept verbatim.
func (c *CronTable) Install(user string, lines []string) error {
	var kept []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") && !isAssignment(trimmed) {
			if err := ValidateCronLine(trimmed); err != nil {
				return fmt.Errorf("line %d: %v", i+1, err)
			}
		}
		kept = append(kept, trimmed)
	}
	c.tabs[user] = kept
	return nil
}

// Remove deletes user's crontab.
func (c *CronTable) Remove(user string) bool {
	_, ok := c.tabs[user]
	delete(c.tabs, user)
	return ok
}

// Contains reports whether any crontab holds line, compared with runs of
// whitespace collapsed.
func (c *CronTable) Contains(line string) bool {
	want := strings.Join(strings.Fields(line), " ")
	for _, lines := range c.tabs {
		for _, l := range lines {
			if strings.Join(strings.Fields(l), " ") == want {
				return true
			}
		}
	}
	return false
}

func isAssignment(line string) bool {
	name, _, ok := strings.Cut(line, "=")
	return ok && name != "" && !strings.ContainsAny(name, " \t*")
}

var cronRanges = [5]struct {
	name     string
	min, max int
}{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day of month", 1, 31},
	{"month", 1, 12},
	{"day of week", 0, 7},
}

var cronMacros = map[string]bool{
	"@reboot": true, "@yearly": true, "@annually": true, "@monthly": true,
	"@weekly": true, "@daily": true, "@midnight": true, "@hourly": true,
}

// ValidateCronLine checks a schedule line: five time fields and a command,
// or an @macro and a command.
func ValidateCronLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) > 0 && strings.HasPrefix(fields[0], "@") {
		if !cronMacros[fields[0]] {
			return fmt.Errorf("bad time specifier %s", fields[0])
		}
		if len(fields) < 2 {
			return fmt.Errorf("missing command")
		}
		return nil
	}
	if len(fields) < 6 {
		return fmt.Errorf("bad command: expected 5 time fields and a command")
	}
	for i, r := range cronRanges {
		if err := validateCronField(fields[i], r.min, r.max); err != nil {
			return fmt.Errorf("bad %s", r.name)
		}
	}
	return nil
}

func validateCronField(field string, min, max int) error {
	for _, item := range strings.Split(field, ",") {
		rng, step, hasStep := strings.Cut(item, "/")
		if hasStep {
			if n, err := strconv.Atoi(step); err != nil || n < 1 {
				return fmt.Errorf("bad step")
			}
		}
		if rng == "*" {
			continue
		}
		lo, hi, isRange := strings.Cut(rng, "-")
		for _, part := range []string{lo, hi} {
			if part == "" && !isRange {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < min || n > max {
				return fmt.Errorf("out of range")
			}
		}
	}
	return nil
}
