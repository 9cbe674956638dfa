package tabular

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, doc any, cfg *renderConfig) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if cfg.indent != "" {
		enc.SetIndent("", cfg.indent)
	}
	return enc.Encode(doc)
}
