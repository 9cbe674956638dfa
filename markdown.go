package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

func writeMarkdown(w io.Writer, g grid, cfg *renderConfig) error {
	if len(g.rows) == 0 {
		return nil
	}
	numCols := len(g.header)

	// Calculate column widths (minimum 3 for alignment markers).
	widths := make([]int, numCols)
	for i, col := range g.header {
		widths[i] = max(3, runewidth.StringWidth(escapeMarkdown(col)))
	}
	for _, row := range g.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(escapeMarkdown(cell)); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}

	aligns := extendAligns(cfg.aligns, numCols)

	if err := writeMarkdownRow(w, g.header, widths, aligns); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range g.rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = escapeMarkdown(cells[i])
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// escapeMarkdown keeps cell text on one line and out of the column syntax.
func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
