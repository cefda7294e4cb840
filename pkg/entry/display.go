package entry

import (
	"github.com/gosuri/uitable"
)

// Table lays entries out one per row: time, color, emotion and episode.
func Table(entries ...*Entry) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	for _, e := range entries {
		tbl.AddRow(e.Row())
	}
	return tbl
}
