// Package diff implements the diff command.
package diff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

type options struct {
	unified    bool
	brief      bool
	same       bool
	recursive  bool
	ignoreCase bool
	ignoreWS   bool
	context    int
}

type diffLine struct {
	tag  byte
	text string
}

type hunk struct {
	start int
	end   int
}

// Run compares two files, or two directories with -r. Differences are
// reported as output; only unreadable operands make it an error.
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{context: 3}
	var contextArg string
	files, err := core.Flags{
		Bool: map[byte]*bool{
			'u': &opts.unified, 'q': &opts.brief, 's': &opts.same, 'r': &opts.recursive,
			'i': &opts.ignoreCase, 'w': &opts.ignoreWS,
		},
		Value: map[byte]*string{'U': &contextArg},
		Long:  map[string]*bool{"unified": &opts.unified, "brief": &opts.brief, "recursive": &opts.recursive},
	}.Parse(args)
	if err != nil {
		return core.UsageError("diff", err.Error())
	}
	if contextArg != "" {
		n, err := strconv.Atoi(contextArg)
		if err != nil || n < 0 {
			return core.UsageError("diff", "invalid context length '"+contextArg+"'")
		}
		opts.context, opts.unified = n, true
	}
	switch {
	case len(files) < 2:
		return core.UsageError("diff", "missing operand after '"+strings.Join(files, " ")+"'")
	case len(files) > 2:
		return core.UsageError("diff", "extra operand '"+files[2]+"'")
	}
	var out []string
	if err := diffPath(ctx, files[0], files[1], &opts, &out); err != nil {
		out = append(out, err.Error())
		return core.Result{Output: core.JoinLines(out), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(out))
}

func diffPath(ctx *core.Context, left, right string, opts *options, out *[]string) error {
	leftNode, err := ctx.State.Stat(left)
	if err != nil && left != "-" {
		return fmt.Errorf("diff: %s: %s", left, vfs.Reason(err))
	}
	rightNode, err := ctx.State.Stat(right)
	if err != nil && right != "-" {
		return fmt.Errorf("diff: %s: %s", right, vfs.Reason(err))
	}
	leftDir := leftNode != nil && left != "-" && leftNode.IsDir()
	rightDir := rightNode != nil && right != "-" && rightNode.IsDir()
	switch {
	case leftDir && rightDir:
		if !opts.recursive {
			return fmt.Errorf("diff: %s: Is a directory", left)
		}
		return diffDir(ctx, left, right, opts, out)
	case leftDir:
		// diff DIR FILE compares DIR/FILE's basename
		return diffPath(ctx, vfs.Join(left, vfs.Base(right)), right, opts, out)
	case rightDir:
		return diffPath(ctx, left, vfs.Join(right, vfs.Base(left)), opts, out)
	}
	return diffFile(ctx, left, right, opts, out)
}

func diffDir(ctx *core.Context, left, right string, opts *options, out *[]string) error {
	leftNode, _ := ctx.State.Stat(left)
	rightNode, _ := ctx.State.Stat(right)
	names := map[string]bool{}
	for _, n := range leftNode.Names() {
		names[n] = true
	}
	for _, n := range rightNode.Names() {
		names[n] = true
	}
	for _, name := range sortedKeys(names) {
		l, r := leftNode.Child(name), rightNode.Child(name)
		switch {
		case r == nil:
			*out = append(*out, fmt.Sprintf("Only in %s: %s", left, name))
			continue
		case l == nil:
			*out = append(*out, fmt.Sprintf("Only in %s: %s", right, name))
			continue
		}
		lp, rp := vfs.Join(left, name), vfs.Join(right, name)
		if l.IsDir() != r.IsDir() {
			*out = append(*out, fmt.Sprintf("File %s is a %s while file %s is a %s", lp, kind(l), rp, kind(r)))
			continue
		}
		var err error
		if l.IsDir() {
			err = diffDir(ctx, lp, rp, opts, out)
		} else {
			err = diffFile(ctx, lp, rp, opts, out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func kind(n *vfs.Node) string {
	if n.IsDir() {
		return "directory"
	}
	return "regular file"
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func diffFile(ctx *core.Context, left, right string, opts *options, out *[]string) error {
	leftData, err := ctx.ReadFile(left)
	if err != nil {
		return fmt.Errorf("diff: %s: %s", left, vfs.Reason(err))
	}
	rightData, err := ctx.ReadFile(right)
	if err != nil {
		return fmt.Errorf("diff: %s: %s", right, vfs.Reason(err))
	}
	leftLines, rightLines := core.Lines(leftData), core.Lines(rightData)
	lines := buildDiffLines(leftLines, rightLines, opts)
	changed := false
	for _, l := range lines {
		if l.tag != ' ' {
			changed = true
			break
		}
	}
	switch {
	case !changed:
		if opts.same {
			*out = append(*out, fmt.Sprintf("Files %s and %s are identical", left, right))
		}
		return nil
	case opts.brief:
		*out = append(*out, fmt.Sprintf("Files %s and %s differ", left, right))
		return nil
	}
	if opts.recursive {
		*out = append(*out, fmt.Sprintf("diff %s %s", left, right))
	}
	if opts.unified {
		writeUnified(out, lines, left, right, opts.context)
	} else {
		writeNormal(out, lines)
	}
	return nil
}

func normalize(s string, opts *options) string {
	if opts.ignoreWS {
		s = strings.Join(strings.Fields(s), "")
	}
	if opts.ignoreCase {
		s = strings.ToLower(s)
	}
	return s
}

// buildDiffLines walks a longest-common-subsequence table to produce an
// edit script.
func buildDiffLines(left, right []string, opts *options) []diffLine {
	eq := func(i, j int) bool { return normalize(left[i], opts) == normalize(right[j], opts) }
	lcs := make([][]int, len(left)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(right)+1)
	}
	for i := len(left) - 1; i >= 0; i-- {
		for j := len(right) - 1; j >= 0; j-- {
			switch {
			case eq(i, j):
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var lines []diffLine
	i, j := 0, 0
	for i < len(left) || j < len(right) {
		switch {
		case i < len(left) && j < len(right) && eq(i, j):
			lines = append(lines, diffLine{tag: ' ', text: left[i]})
			i++
			j++
		case i < len(left) && (j == len(right) || lcs[i+1][j] >= lcs[i][j+1]):
			lines = append(lines, diffLine{tag: '-', text: left[i]})
			i++
		default:
			lines = append(lines, diffLine{tag: '+', text: right[j]})
			j++
		}
	}
	return lines
}

// writeNormal emits the classic "NcM" format.
func writeNormal(out *[]string, lines []diffLine) {
	a, b := 0, 0
	for i := 0; i < len(lines); {
		if lines[i].tag == ' ' {
			a++
			b++
			i++
			continue
		}
		var dels, adds []string
		for ; i < len(lines) && lines[i].tag != ' '; i++ {
			if lines[i].tag == '-' {
				dels = append(dels, lines[i].text)
			} else {
				adds = append(adds, lines[i].text)
			}
		}
		var cmd string
		switch {
		case len(adds) == 0:
			cmd = span(a+1, a+len(dels)) + "d" + strconv.Itoa(b)
		case len(dels) == 0:
			cmd = strconv.Itoa(a) + "a" + span(b+1, b+len(adds))
		default:
			cmd = span(a+1, a+len(dels)) + "c" + span(b+1, b+len(adds))
		}
		*out = append(*out, cmd)
		for _, d := range dels {
			*out = append(*out, "< "+d)
		}
		if len(dels) > 0 && len(adds) > 0 {
			*out = append(*out, "---")
		}
		for _, s := range adds {
			*out = append(*out, "> "+s)
		}
		a += len(dels)
		b += len(adds)
	}
}

func span(from, to int) string {
	if from == to {
		return strconv.Itoa(from)
	}
	return fmt.Sprintf("%d,%d", from, to)
}

func makeHunks(lines []diffLine, context int) []hunk {
	var hunks []hunk
	i := 0
	for i < len(lines) {
		for i < len(lines) && lines[i].tag == ' ' {
			i++
		}
		if i >= len(lines) {
			break
		}
		start := max(i-context, 0)
		end := i
		lastChange := i
		for end < len(lines) {
			if lines[end].tag != ' ' {
				lastChange = end
			}
			if end-lastChange > context {
				break
			}
			end++
		}
		if len(hunks) > 0 && start <= hunks[len(hunks)-1].end {
			hunks[len(hunks)-1].end = max(end, hunks[len(hunks)-1].end)
		} else {
			hunks = append(hunks, hunk{start: start, end: end})
		}
		i = end
	}
	return hunks
}

func writeUnified(out *[]string, lines []diffLine, left, right string, context int) {
	hunks := makeHunks(lines, context)
	if len(hunks) == 0 {
		return
	}
	*out = append(*out, "--- "+left, "+++ "+right)
	for _, h := range hunks {
		aCount, bCount := 0, 0
		for _, line := range lines[h.start:h.end] {
			if line.tag != '+' {
				aCount++
			}
			if line.tag != '-' {
				bCount++
			}
		}
		aStart := position(lines, h.start, '+')
		bStart := position(lines, h.start, '-')
		if aCount == 0 {
			aStart--
		}
		if bCount == 0 {
			bStart--
		}
		*out = append(*out, fmt.Sprintf("@@ -%s +%s @@", rangeOf(aStart, aCount), rangeOf(bStart, bCount)))
		for _, line := range lines[h.start:h.end] {
			*out = append(*out, string(line.tag)+line.text)
		}
	}
}

func rangeOf(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// position is the 1-based line number at index in the file that does not
// contain lines tagged skip.
func position(lines []diffLine, index int, skip byte) int {
	pos := 1
	for _, line := range lines[:index] {
		if line.tag != skip {
			pos++
		}
	}
	return pos
}
