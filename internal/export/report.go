package export

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"unifimac/internal/labeler"
)

// EmptyReportMessage is printed instead of a table when there are no entries.
const EmptyReportMessage = "No MAC addresses found."

// Report renders entries as an aligned MAC/Name table.
func Report(entries []labeler.Entry) string {
	if len(entries) == 0 {
		return EmptyReportMessage
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{e.MAC, e.Label})
	}
	return RenderTable(table.Row{"MAC", "Name"}, rows)
}

// WriteReport writes Report(entries) followed by a newline.
func WriteReport(w io.Writer, entries []labeler.Entry) error {
	_, err := fmt.Fprintln(w, Report(entries))
	return err
}
