package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

func writeTable(w io.Writer, g grid, cfg *renderConfig) error {
	if len(g.rows) == 0 {
		return nil
	}
	header := g.header
	rows := g.rows
	footer := cfg.footer
	aligns := cfg.aligns
	wrapWidths := cfg.wrapWidths

	// Apply row numbering by prepending a column.
	if cfg.numbered {
		header = append([]string{cfg.numberHeader}, header...)
		numbered := make([][]string, len(rows))
		for i, row := range rows {
			numbered[i] = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows = numbered
		if len(footer) > 0 {
			footer = append([]string{""}, footer...)
		}
		aligns = append([]Alignment{AlignRight}, aligns...)
		if len(wrapWidths) > 0 {
			wrapWidths = append([]int{0}, wrapWidths...)
		}
	}

	numCols := colCount(header, rows, footer)
	widths := computeWidths(numCols, header, rows, footer)

	// Apply max column widths for truncation.
	for i, max := range cfg.maxWidths {
		if cfg.numbered {
			i++
		}
		if i < numCols && max > 0 && widths[i] > max {
			widths[i] = max
		}
	}

	aligns = extendAligns(aligns, numCols)

	l := layout{widths: widths, aligns: aligns, wrapWidths: wrapWidths, pageSize: cfg.pageSize}
	var err error
	if cfg.border == BorderNone {
		err = renderPlainTable(w, header, rows, footer, l)
	} else {
		err = renderBorderedTable(w, cfg.title, header, rows, footer, l, cfg.border)
	}
	if err != nil {
		return err
	}

	if cfg.caption != "" {
		if _, err := fmt.Fprintln(w, cfg.caption); err != nil {
			return err
		}
	}
	return nil
}

// layout carries the per-column geometry shared by every rendered line.
type layout struct {
	widths     []int
	aligns     []Alignment
	wrapWidths []int
	pageSize   int
}

func colCount(header []string, rows [][]string, footer []string) int {
	n := len(header)
	for _, row := range rows {
		if len(row) > n {
			n = len(row)
		}
	}
	if len(footer) > n {
		n = len(footer)
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string, footer []string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, cell := range footer {
		if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
			widths[i] = w
		}
	}
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// --- Cell wrapping ---

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// Advance at least one rune when it is wider than the column.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

// lines splits a row into the physical lines it occupies. Without wrap
// widths every row is a single line.
func (l layout) lines(cells []string) [][]string {
	wrapped := make([][]string, len(l.widths))
	n := 1
	for i, width := range l.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		ww := 0
		if i < len(l.wrapWidths) {
			ww = l.wrapWidths[i]
		}
		if ww > 0 && ww < width {
			// Use wrap width for wrapping but column width for formatting.
			wrapped[i] = wrapCell(cell, ww)
		} else {
			wrapped[i] = []string{cell}
		}
		n = max(n, len(wrapped[i]))
	}
	out := make([][]string, n)
	for line := range n {
		parts := make([]string, len(l.widths))
		for i, width := range l.widths {
			cell := ""
			if line < len(wrapped[i]) {
				cell = wrapped[i][line]
			}
			parts[i] = formatTableCell(cell, width, l.aligns[i])
		}
		out[line] = parts
	}
	return out
}

// repeatHeader reports whether the header is re-printed before row i.
func (l layout) repeatHeader(header []string, i int) bool {
	return l.pageSize > 0 && len(header) > 0 && i > 0 && i%l.pageSize == 0
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, header []string, rows [][]string, footer []string, l layout) error {
	if len(header) > 0 {
		if err := writePlainRow(w, header, l); err != nil {
			return err
		}
		if err := writePlainSep(w, l.widths); err != nil {
			return err
		}
	}
	for i, row := range rows {
		if l.repeatHeader(header, i) {
			if err := writePlainSep(w, l.widths); err != nil {
				return err
			}
			if err := writePlainRow(w, header, l); err != nil {
				return err
			}
			if err := writePlainSep(w, l.widths); err != nil {
				return err
			}
		}
		if err := writePlainRow(w, row, l); err != nil {
			return err
		}
	}
	if len(footer) > 0 {
		if err := writePlainSep(w, l.widths); err != nil {
			return err
		}
		if err := writePlainRow(w, footer, l); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, l layout) error {
	for _, parts := range l.lines(cells) {
		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, title string, header []string, rows [][]string, footer []string, l layout, style BorderStyle) error {
	bc := borderSets[style]
	widths := l.widths

	if title != "" {
		// Full-width top border (no column separators).
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(widths) - 2 // subtract 1-space padding on each side
		padded := alignCell(title, inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		// Transition to columns.
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	divider := func() error {
		return drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee)
	}

	if len(header) > 0 {
		if err := drawBorderedRow(w, header, l, bc.vertical); err != nil {
			return err
		}
		if err := divider(); err != nil {
			return err
		}
	}

	for i, row := range rows {
		if l.repeatHeader(header, i) {
			if err := divider(); err != nil {
				return err
			}
			if err := drawBorderedRow(w, header, l, bc.vertical); err != nil {
				return err
			}
			if err := divider(); err != nil {
				return err
			}
		}
		if err := drawBorderedRow(w, row, l, bc.vertical); err != nil {
			return err
		}
	}

	if len(footer) > 0 {
		if err := divider(); err != nil {
			return err
		}
		if err := drawBorderedRow(w, footer, l, bc.vertical); err != nil {
			return err
		}
	}

	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, l layout, vert string) error {
	for _, parts := range l.lines(cells) {
		line := vert + " " + strings.Join(parts, " "+vert+" ") + " " + vert
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
