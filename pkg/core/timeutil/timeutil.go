// Package timeutil provides shared helpers for the clock builtins.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DurationSpec is a parsed duration with the unit it was written in.
type DurationSpec struct {
	Duration time.Duration
	Unit     string
	Value    float64
}

// ParseDuration parses sleep-style durations with an optional s, m, h or d
// suffix and records the unit used.
func ParseDuration(value string) (DurationSpec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DurationSpec{}, strconv.ErrSyntax
	}
	unit := value[len(value)-1]
	multiplier := time.Second
	specUnit := "s"
	if unit < '0' || unit > '9' {
		value = value[:len(value)-1]
		switch unit {
		case 's':
		case 'm':
			multiplier, specUnit = time.Minute, "m"
		case 'h':
			multiplier, specUnit = time.Hour, "h"
		case 'd':
			multiplier, specUnit = 24*time.Hour, "d"
		default:
			return DurationSpec{}, strconv.ErrSyntax
		}
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return DurationSpec{}, strconv.ErrSyntax
	}
	return DurationSpec{
		Duration: time.Duration(parsed * float64(multiplier)),
		Unit:     specUnit,
		Value:    parsed,
	}, nil
}

// FormatUptime renders d the way uptime does: "3:17", or "2 days,  4:05".
func FormatUptime(d time.Duration) string {
	totalMinutes := int(d.Minutes())
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes / 60) % 24
	minutes := totalMinutes % 60
	clock := fmt.Sprintf("%2d:%02d", hours, minutes)
	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
	return clock
}

// FormatElapsed renders d the way the shell's time keyword does: "0m2.500s".
func FormatElapsed(d time.Duration) string {
	minutes := int(d / time.Minute)
	seconds := (d - time.Duration(minutes)*time.Minute).Seconds()
	return fmt.Sprintf("%dm%.3fs", minutes, seconds)
}
