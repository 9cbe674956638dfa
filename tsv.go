package tabular

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV(w io.Writer, g grid) error {
	if len(g.rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, strings.Join(g.header, "\t")); err != nil {
		return err
	}
	for _, row := range g.rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
