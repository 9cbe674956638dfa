package tabular

import (
	"io"
	"strings"
)

// writeList writes the column set of a table.
func writeList(w io.Writer, cols []string, cfg *renderConfig) error {
	if len(cols) == 0 {
		return nil
	}
	sep := "\n"
	if cfg.sep != "" {
		sep = cfg.sep
	}
	_, err := io.WriteString(w, strings.Join(cols, sep)+"\n")
	return err
}
