// Package tr implements the tr command.
package tr

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// Run translates, deletes (-d) or squeezes (-s) characters read from stdin.
// -c complements SET1 over ASCII.
func Run(ctx *core.Context, args []string) core.Result {
	var complement, deleteSet, squeeze bool
	sets, err := core.Flags{
		Bool:    map[byte]*bool{'c': &complement, 'd': &deleteSet, 's': &squeeze},
		Aliases: map[byte]byte{'C': 'c'},
	}.Parse(args)
	if err != nil {
		return core.UsageError("tr", err.Error())
	}
	switch {
	case len(sets) == 0:
		return core.UsageError("tr", "missing operand")
	case len(sets) == 1 && !deleteSet && !squeeze:
		return core.UsageError("tr", "missing operand after '"+sets[0]+"'")
	case len(sets) > 2 || len(sets) == 2 && deleteSet && !squeeze:
		return core.UsageError("tr", "extra operand '"+sets[len(sets)-1]+"'")
	}

	from, err := textutil.ExpandSet(sets[0])
	if err != nil {
		return core.UsageError("tr", err.Error())
	}
	inFrom := map[rune]bool{}
	for _, r := range from {
		inFrom[r] = true
	}
	if complement {
		var comp []rune
		for r := rune(0); r < 128; r++ {
			if !inFrom[r] {
				comp = append(comp, r)
			}
		}
		from = comp
		inFrom = map[rune]bool{}
		for _, r := range from {
			inFrom[r] = true
		}
	}
	var to []rune
	if len(sets) == 2 {
		if to, err = textutil.ExpandSet(sets[1]); err != nil {
			return core.UsageError("tr", err.Error())
		}
		if len(to) == 0 && !deleteSet {
			return core.UsageError("tr", "when not truncating set1, string2 must be non-empty")
		}
	}
	translate := !deleteSet && len(to) > 0
	mapping := map[rune]rune{}
	if translate {
		for i, r := range from {
			if _, seen := mapping[r]; !seen {
				mapping[r] = to[min(i, len(to)-1)]
			}
		}
	}
	// squeeze applies to SET2 when translating or deleting, else to SET1
	squeezeSet := inFrom
	if len(sets) == 2 {
		squeezeSet = map[rune]bool{}
		for _, r := range to {
			squeezeSet[r] = true
		}
	}

	var b strings.Builder
	var prev rune = -1
	for _, r := range ctx.Stdin {
		if deleteSet && inFrom[r] {
			continue
		}
		if m, ok := mapping[r]; ok {
			r = m
		}
		if squeeze && r == prev && squeezeSet[r] {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return core.Ok(strings.TrimSuffix(b.String(), "\n"))
}
