package tabular

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, t Table, cfg *renderConfig) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range t {
		var doc any = r.JSON
		if cfg.items {
			doc = r
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return nil
}
