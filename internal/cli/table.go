package cli

import (
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/alnah/sampleclips/internal/format"
	"github.com/alnah/sampleclips/internal/sampler"
)

// clipTable renders the clips of a run, one row per clip.
// Failed lists clip indices whose extraction returned an error.
func clipTable(clips []sampler.Clip, failed map[int]bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Offset", "File", "Status"})

	for _, c := range clips {
		status := "ok"
		if failed[c.Index] {
			status = "failed"
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(c.Index),
			format.Seconds(c.Start),
			format.Clock(c.Start),
			filepath.Base(c.Path),
			status,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
