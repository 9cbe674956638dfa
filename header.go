package tabular

import "strconv"

// DemoteHeader re-keys every row by column position and prepends a row
// holding the column names. An empty table is returned unchanged.
func DemoteHeader(t Table) Table {
	if len(t) == 0 {
		return t
	}
	cols := Columns(t)
	header := NewObject()
	for i, c := range cols {
		header.Set(strconv.Itoa(i), String(c))
	}
	out := make(Table, 0, len(t)+1)
	out = append(out, NewRow(header))
	for _, r := range t {
		fields := NewObject()
		for i, c := range cols {
			if v, ok := r.Get(c); ok {
				fields.Set(strconv.Itoa(i), v)
			}
		}
		out = append(out, Row{JSON: fields, Binary: r.Binary.clone()})
	}
	return out
}

// PromoteHeader removes the first row and uses its values as field names
// for the remaining rows. An empty table is returned unchanged.
func PromoteHeader(t Table) Table {
	if len(t) == 0 {
		return t
	}
	rest := t[1:]
	cols := Columns(rest)
	names := HeaderNames(t[0].JSON, cols)
	out := make(Table, 0, len(rest))
	for _, r := range rest {
		fields := NewObject()
		for i, c := range cols {
			v, ok := r.Get(c)
			if !ok {
				v = Null()
			}
			fields.Set(names[i], v)
		}
		out = append(out, Row{JSON: fields, Binary: r.Binary.clone()})
	}
	return out
}

// HeaderNames resolves the output name of each column. A column whose
// header value is missing, null or empty gets its position as name,
// suffixed with _0, _1, ... while that name is already used by a header
// value or an earlier synthesized name.
func HeaderNames(header *Object, cols []string) []string {
	used := make(map[string]struct{}, header.Len())
	for _, v := range header.All() {
		used[v.Text()] = struct{}{}
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		if v, ok := header.Get(c); ok && v.Text() != "" {
			names[i] = v.Text()
			continue
		}
		pos := strconv.Itoa(i)
		name := pos
		for n := 0; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = pos + "_" + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}
