package console

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"contextwatch/internal/domain"
)

// RenderEntityTable prints resolved entity matches as an aligned table,
// one row per match.
func RenderEntityTable(w io.Writer, matches []domain.EntityMatch) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.ID, m.Name, m.Type, m.Description})
	}

	table.Header([]string{"ID", "Name", "Type", "Description"})
	if err := table.Bulk(rows); err != nil {
		return err
	}

	return table.Render()
}
