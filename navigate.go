package tabular

import "strconv"

// NavigateOptions selects what a navigate operation drills into.
type NavigateOptions struct {
	// Row is the source row index. Ignored by [NavigateColumn].
	Row int
	// Col is the field to drill into. Ignored by [NavigateRow].
	Col string
	// Expand merges the source fields into each produced row as a base.
	Expand bool
	// LoopArray fans an array value out into one row per element.
	LoopArray bool
}

// Navigate dispatches to the navigate variant named by typ.
func Navigate(t Table, typ NavigateType, opts NavigateOptions) (Table, error) {
	switch typ {
	case NavigateRowType:
		return NavigateRow(t, opts)
	case NavigateColType:
		return NavigateColumn(t, func(int) NavigateOptions { return opts }), nil
	case NavigateCellType:
		return NavigateCell(t, opts)
	default:
		_, err := ParseNavigateType(string(typ))
		return nil, err
	}
}

// NavigateCell re-emits the value at (opts.Row, opts.Col) as new rows.
func NavigateCell(t Table, opts NavigateOptions) (Table, error) {
	if opts.Row < 0 || opts.Row >= len(t) {
		return nil, errOutOfRange(opts.Row, len(t))
	}
	src := t[opts.Row]
	var base *Object
	if opts.Expand {
		base = src.JSON
	}
	return appendPayloads(Table{}, lookup(src, opts.Col), opts.LoopArray, base, opts.Col, src.Binary), nil
}

// NavigateColumn drills into one field of every row. Options are resolved
// per row index, so callers may vary them row by row.
func NavigateColumn(t Table, at func(index int) NavigateOptions) Table {
	out := Table{}
	for i, src := range t {
		opts := at(i)
		var base *Object
		if opts.Expand {
			base = src.JSON
		}
		out = appendPayloads(out, lookup(src, opts.Col), opts.LoopArray, base, opts.Col, src.Binary)
	}
	return out
}

// NavigateRow re-emits every field of row opts.Row as new rows. With
// Expand, the base of each produced row is the field's column across the
// whole table, keyed by row index, rather than the source row's other
// fields.
func NavigateRow(t Table, opts NavigateOptions) (Table, error) {
	if opts.Row < 0 || opts.Row >= len(t) {
		return nil, errOutOfRange(opts.Row, len(t))
	}
	src := t[opts.Row]
	out := Table{}
	for key, v := range src.JSON.All() {
		var base *Object
		if opts.Expand {
			base = project(t, key)
		}
		out = appendPayloads(out, v, opts.LoopArray, base, key, src.Binary)
	}
	return out, nil
}

// project collects the value of key from every row, keyed by row index.
func project(t Table, key string) *Object {
	o := NewObject()
	for i, r := range t {
		if v, ok := r.Get(key); ok {
			o.Set(strconv.Itoa(i), v)
		}
	}
	return o
}

// lookup finds col on r, falling back to col read as a decimal index.
// A missing field reads as null.
func lookup(r Row, col string) Value {
	if v, ok := r.Get(col); ok {
		return v
	}
	n, err := strconv.Atoi(col)
	if err != nil {
		return Null()
	}
	v, _ := r.Get(strconv.Itoa(n))
	return v
}

func appendPayloads(out Table, v Value, loopArray bool, base *Object, column string, binary Binary) Table {
	if loopArray && v.Kind() == KindArray {
		for _, e := range v.Array() {
			out = append(out, newRow(e, base, column, binary))
		}
		return out
	}
	return append(out, newRow(v, base, column, binary))
}

// newRow builds one output row. Base fields are merged first and object
// payload fields overwrite them; any other payload is stored under column.
func newRow(payload Value, base *Object, column string, binary Binary) Row {
	fields := NewObject()
	fields.Merge(base)
	if payload.Kind() == KindObject {
		fields.Merge(payload.Object())
	} else {
		fields.Set(column, payload)
	}
	return Row{JSON: fields, Binary: binary.clone()}
}
