package tabular

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format represents an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatList     Format = "list"
	FormatENV      Format = "env"
	FormatTSV      Format = "tsv"
	FormatJSONL    Format = "jsonl"
	FormatHTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatTable, FormatMarkdown, FormatList, FormatENV, FormatTSV, FormatJSONL, FormatHTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go text/template.
// The template receives the row's fields as a map.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// --- Value Types ---

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorderStyle parses a border style name such as "rounded" or "ascii".
func ParseBorderStyle(s string) (BorderStyle, error) {
	if b, ok := borderNames[strings.ToLower(s)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: border %q, valid options are: rounded, none, ascii, heavy, double", ErrInvalidOption, s)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// --- Render Options ---

type renderConfig struct {
	items        bool
	indent       string
	delimiter    rune
	title        string
	caption      string
	border       BorderStyle
	aligns       []Alignment
	footer       []string
	numbered     bool
	numberHeader string
	maxWidths    []int
	wrapWidths   []int
	pageSize     int
	sep          string
	export       bool
	quote        bool
}

// RenderOption customizes [Write].
type RenderOption func(*renderConfig)

// WithItems renders JSON, YAML and JSONL as {"json", "binary"} items
// instead of bare records.
func WithItems() RenderOption { return func(c *renderConfig) { c.items = true } }

// WithIndent controls JSON/YAML indentation.
// Without it, JSON is compact and YAML uses its default indent.
func WithIndent(indent string) RenderOption { return func(c *renderConfig) { c.indent = indent } }

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) RenderOption { return func(c *renderConfig) { c.delimiter = r } }

// WithTitle renders a title above the table (or an HTML caption).
func WithTitle(title string) RenderOption { return func(c *renderConfig) { c.title = title } }

// WithCaption renders a line below the table.
func WithCaption(caption string) RenderOption { return func(c *renderConfig) { c.caption = caption } }

// WithBorder sets the table border style. Default: BorderRounded.
func WithBorder(b BorderStyle) RenderOption { return func(c *renderConfig) { c.border = b } }

// WithAlignments sets per-column alignment. Default: AlignLeft.
// Also used by Markdown and HTML.
func WithAlignments(a ...Alignment) RenderOption { return func(c *renderConfig) { c.aligns = a } }

// WithFooter renders a footer row below the table.
func WithFooter(cells ...string) RenderOption { return func(c *renderConfig) { c.footer = cells } }

// WithNumbering prepends a row number column with the given header.
func WithNumbering(header string) RenderOption {
	return func(c *renderConfig) {
		c.numbered = true
		c.numberHeader = header
	}
}

// WithMaxWidths sets maximum column widths for Table format. Cells
// exceeding the max are truncated with "...". Zero means no limit.
func WithMaxWidths(w ...int) RenderOption { return func(c *renderConfig) { c.maxWidths = w } }

// WithWrapWidths wraps cell text at the given per-column widths instead of
// truncating. Zero means no wrapping for that column.
func WithWrapWidths(w ...int) RenderOption { return func(c *renderConfig) { c.wrapWidths = w } }

// WithPageSize re-prints the header every n data rows in Table format.
func WithPageSize(n int) RenderOption { return func(c *renderConfig) { c.pageSize = n } }

// WithSeparator sets the delimiter between List entries. Default: newline.
func WithSeparator(sep string) RenderOption { return func(c *renderConfig) { c.sep = sep } }

// WithExport prefixes ENV lines with "export ".
func WithExport() RenderOption { return func(c *renderConfig) { c.export = true } }

// WithQuote wraps ENV values in double quotes.
func WithQuote() RenderOption { return func(c *renderConfig) { c.quote = true } }

// grid is the string view of a table used by the tabular formats.
type grid struct {
	header []string
	rows   [][]string
}

func gridOf(t Table) grid {
	cols := Columns(t)
	rows := make([][]string, len(t))
	for i, r := range t {
		cells := make([]string, len(cols))
		for j, c := range cols {
			if v, ok := r.Get(c); ok {
				cells[j] = v.Text()
			}
		}
		rows[i] = cells
	}
	return grid{header: cols, rows: rows}
}

// documents returns what the document formats serialize.
func documents(t Table, cfg *renderConfig) any {
	if cfg.items {
		if t == nil {
			return Table{}
		}
		return t
	}
	return t.Records()
}

// Write renders t in format f and writes it to w.
func Write(w io.Writer, f Format, t Table, opts ...RenderOption) error {
	cfg := &renderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, documents(t, cfg), cfg)
	case FormatYAML:
		return writeYAML(w, documents(t, cfg), cfg)
	case FormatJSONL:
		return writeJSONL(w, t, cfg)
	case FormatCSV:
		return writeCSV(w, gridOf(t), cfg)
	case FormatTSV:
		return writeTSV(w, gridOf(t))
	case FormatTable:
		return writeTable(w, gridOf(t), cfg)
	case FormatMarkdown:
		return writeMarkdown(w, gridOf(t), cfg)
	case FormatHTML:
		return writeHTML(w, gridOf(t), cfg)
	case FormatList:
		return writeList(w, Columns(t), cfg)
	case FormatENV:
		return writeENV(w, t, cfg)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, t)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders t and returns the bytes.
func Marshal(f Format, t Table, opts ...RenderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
