package tabular

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, g grid, cfg *renderConfig) error {
	if len(g.rows) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if cfg.delimiter != 0 {
		cw.Comma = cfg.delimiter
	}
	if err := cw.Write(g.header); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
