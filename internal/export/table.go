package export

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// plainStyle draws columns two spaces apart with a dashed line under the
// header and no outer border.
var plainStyle = table.Style{
	Name: "plain",
	Box: table.BoxStyle{
		MiddleHorizontal: "-",
		MiddleSeparator:  "  ",
		MiddleVertical:   "  ",
		PaddingLeft:      "",
		PaddingRight:     "",
	},
	Format: table.FormatOptions{
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
		Footer: text.FormatDefault,
	},
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: true,
		SeparateHeader:  true,
		SeparateRows:    false,
		SeparateFooter:  false,
	},
}

// RenderTable renders rows under header in the plain report style.
func RenderTable(header table.Row, rows []table.Row) string {
	t := table.NewWriter()
	t.SetStyle(plainStyle)
	t.AppendHeader(header)
	t.AppendRows(rows)
	return t.Render()
}
