// Package cut implements the cut command.
package cut

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// Run prints selected fields (-f, split on -d, default TAB) or characters
// (-c) of each input line. Positions are 1-based and comma separated.
func Run(ctx *core.Context, args []string) core.Result {
	var fields, chars, bytes string
	delim := "\t"
	var onlyDelimited bool
	files, err := core.Flags{
		Bool:  map[byte]*bool{'s': &onlyDelimited},
		Value: map[byte]*string{'f': &fields, 'c': &chars, 'b': &bytes, 'd': &delim},
	}.Parse(args)
	if err != nil {
		return core.UsageError("cut", err.Error())
	}
	if chars == "" {
		chars = bytes
	}
	switch {
	case fields != "" && chars != "":
		return core.UsageError("cut", "only one type of list may be specified")
	case fields == "" && chars == "":
		return core.UsageError("cut", "you must specify a list of bytes, characters, or fields")
	case len([]rune(delim)) != 1:
		return core.UsageError("cut", "the delimiter must be a single character")
	}
	list := fields
	if list == "" {
		list = chars
	}
	spans, err := textutil.ParseList(list)
	if err != nil {
		return core.UsageError("cut", err.Error())
	}

	inputs, res := ctx.ReadInputs("cut", files)
	if res.Failed() {
		return res
	}
	var out []string
	for _, in := range inputs {
		for _, line := range core.Lines(in.Data) {
			if fields == "" {
				out = append(out, textutil.SelectChars(line, spans))
				continue
			}
			if sel, ok := textutil.SelectFields(line, delim, spans, onlyDelimited); ok {
				out = append(out, sel)
			}
		}
	}
	return core.Ok(core.JoinLines(out))
}
