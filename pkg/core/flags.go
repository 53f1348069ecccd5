package core

import (
	"fmt"
	"strings"
)

// FlagError is a malformed command line.
type FlagError struct {
	msg string
}

func (e *FlagError) Error() string { return e.msg }

func flagErrorf(format string, opt string) error {
	return &FlagError{msg: fmt.Sprintf(format, opt)}
}

// Flags describes the options one applet accepts. Short flags may be
// clustered (-la); a value flag takes the rest of its cluster or the next
// argument (-n5, -n 5). Options and operands may be interleaved; "--" ends
// option parsing and a lone "-" is an operand.
type Flags struct {
	Bool      map[byte]*bool
	Value     map[byte]*string
	Long      map[string]*bool
	LongValue map[string]*string
	// Aliases maps a short flag to the one whose target it sets.
	Aliases map[byte]byte
}

// Parse applies args to the targets and returns the operands.
func (f Flags) Parse(args []string) ([]string, error) {
	var operands []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(operands, args[i+1:]...), nil
		case strings.HasPrefix(arg, "--"):
			next, err := f.parseLong(args, i)
			if err != nil {
				return nil, err
			}
			i = next
		case len(arg) > 1 && arg[0] == '-':
			next, err := f.parseShort(args, i)
			if err != nil {
				return nil, err
			}
			i = next
		default:
			operands = append(operands, arg)
		}
	}
	return operands, nil
}

func (f Flags) parseLong(args []string, i int) (int, error) {
	name, value, hasValue := strings.Cut(args[i][2:], "=")
	if target, ok := f.Long[name]; ok && !hasValue {
		if target != nil {
			*target = true
		}
		return i, nil
	}
	target, ok := f.LongValue[name]
	if !ok {
		return i, flagErrorf("unrecognized option '%s'", args[i])
	}
	if !hasValue {
		if i+1 >= len(args) {
			return i, flagErrorf("option '%s' requires an argument", "--"+name)
		}
		i++
		value = args[i]
	}
	*target = value
	return i, nil
}

func (f Flags) parseShort(args []string, i int) (int, error) {
	arg := args[i]
	for j := 1; j < len(arg); j++ {
		c := arg[j]
		if alias, ok := f.Aliases[c]; ok {
			c = alias
		}
		if target, ok := f.Value[c]; ok {
			switch {
			case j+1 < len(arg):
				*target = arg[j+1:]
			case i+1 < len(args):
				i++
				*target = args[i]
			default:
				return i, flagErrorf("option requires an argument -- '%s'", string(arg[j]))
			}
			return i, nil
		}
		target, ok := f.Bool[c]
		if !ok {
			return i, flagErrorf("invalid option -- '%s'", string(arg[j]))
		}
		if target != nil {
			*target = true
		}
	}
	return i, nil
}

// ParseBoolFlags parses short boolean flags (e.g., -abc) and returns the
// remaining operands.
func ParseBoolFlags(args []string, flags map[byte]*bool) ([]string, error) {
	return Flags{Bool: flags}.Parse(args)
}
