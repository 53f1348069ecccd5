package core

import (
	"bytes"
	"strings"

	"github.com/rodaine/table"
)

// Table renders rows under headers as aligned columns, the layout ps, df,
// lsblk and friends use. Trailing padding is trimmed from every line.
func Table(headers []any, rows [][]any) string {
	var buf bytes.Buffer
	t := table.New(headers...).WithWriter(&buf).WithPadding(2)
	for _, row := range rows {
		t.AddRow(row...)
	}
	t.Print()
	lines := Lines(buf.String())
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return JoinLines(lines)
}
