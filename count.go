package tabular

// Count returns a single row holding the row, column or cell count of t at
// the dot-separated destinationKey.
func Count(t Table, typ CountType, destinationKey string) (Table, error) {
	var n int
	switch typ {
	case CountRows:
		n = len(t)
	case CountCols:
		n = len(Columns(t))
	case CountCells:
		n = len(Columns(t)) * len(t)
	default:
		_, err := ParseCountType(string(typ))
		return nil, err
	}
	fields := NewObject()
	fields.SetPath(destinationKey, Int(n))
	return Table{NewRow(fields)}, nil
}
