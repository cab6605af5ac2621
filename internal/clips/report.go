package clips

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderReport builds a human-readable HTML summary of suggested clips:
// one section per clip with its time range, score, combined text, and a
// table of the caption lines it covers.
func RenderReport(videoID string, suggestions []Clip) ([]byte, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# Clip suggestions for %s\n\n", videoID)

	if len(suggestions) == 0 {
		md.WriteString("No clips could be suggested for this video.\n")
	}

	for i, c := range suggestions {
		fmt.Fprintf(&md, "## Clip %d: %s - %s (%.2fs, score %.2f)\n\n",
			i+1, formatTimestamp(c.Start), formatTimestamp(c.End), c.Duration, c.Score)
		fmt.Fprintf(&md, "%s\n\n", c.Text)

		if len(c.Lines) > 0 {
			md.WriteString("| Start | End | Line |\n|---|---|---|\n")
			for _, l := range c.Lines {
				fmt.Fprintf(&md, "| %s | %s | %s |\n",
					formatTimestamp(l.Start), formatTimestamp(l.End), tableCell(l.Text))
			}
			md.WriteString("\n")
		}
	}

	renderer := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(md.String()), &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// formatTimestamp renders seconds as m:ss.cc for display.
func formatTimestamp(sec float64) string {
	m := int(sec) / 60
	s := sec - float64(m*60)
	return fmt.Sprintf("%d:%05.2f", m, s)
}

// tableCell escapes characters that would break a markdown table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
