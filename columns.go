package tabular

// Columns returns the ordered union of field names across t. The first
// row's keys come first in that row's order; later rows append keys not yet
// seen.
func Columns(t Table) []string {
	if len(t) == 0 {
		return []string{}
	}
	cols := t[0].JSON.Keys()
	if cols == nil {
		cols = []string{}
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		seen[c] = struct{}{}
	}
	for _, r := range t[1:] {
		for k := range r.JSON.All() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}
