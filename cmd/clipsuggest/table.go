package main

import (
	"fmt"

	"github.com/dgallion1/clipsuggest/internal/clips"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const maxTableText = 70

func renderClipTable(suggestions []clips.Clip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Duration", "Score", "Text"})

	for i, c := range suggestions {
		tw.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", c.Start),
			fmt.Sprintf("%.2f", c.End),
			fmt.Sprintf("%.2fs", c.Duration),
			fmt.Sprintf("%.2f", c.Score),
			truncate(c.Text, maxTableText),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
