package tabular

import "strconv"

// Transpose turns every column of t into a row. The output row for a column
// holds one field per input row, keyed by the row's index; rows lacking the
// column contribute no field. Attachments are dropped since no single
// source row exists.
func Transpose(t Table) Table {
	cols := Columns(t)
	out := make(Table, 0, len(cols))
	for _, c := range cols {
		fields := NewObject()
		for i, r := range t {
			if v, ok := r.Get(c); ok {
				fields.Set(strconv.Itoa(i), v)
			}
		}
		out = append(out, NewRow(fields))
	}
	return out
}
