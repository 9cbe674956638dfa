package tabular

import (
	"fmt"
	"io"
)

// writeENV writes one KEY=value line per top-level field, with a blank line
// between rows.
func writeENV(w io.Writer, t Table, cfg *renderConfig) error {
	prefix := ""
	if cfg.export {
		prefix = "export "
	}
	for i, r := range t {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for k, v := range r.JSON.All() {
			var err error
			if cfg.quote {
				_, err = fmt.Fprintf(w, "%s%s=%q\n", prefix, k, v.Text())
			} else {
				_, err = fmt.Fprintf(w, "%s%s=%s\n", prefix, k, v.Text())
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
