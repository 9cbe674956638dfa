package tabular_test

import (
	"testing"

	"github.com/lublak/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Columns ---

func TestColumns(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  []string
	}{
		"empty":         {input: `[]`, want: []string{}},
		"single row":    {input: `[{"b":1,"a":2}]`, want: []string{"b", "a"}},
		"first seen":    {input: `[{"a":1,"b":2},{"b":3,"c":4},{"d":5,"a":6}]`, want: []string{"a", "b", "c", "d"}},
		"empty first":   {input: `[{},{"x":1}]`, want: []string{"x"}},
		"all empty row": {input: `[{}]`, want: []string{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := records(t, tt.input)
			got := tabular.Columns(tbl)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tabular.Columns(tbl), "recomputing yields the same list")
		})
	}
}

// --- Transpose ---

func TestTranspose(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":  {input: `[]`, want: `[]`},
		"dense":  {input: `[{"a":1,"b":2},{"a":3,"b":4}]`, want: `[{"0":1,"1":3},{"0":2,"1":4}]`},
		"sparse": {input: `[{"a":1},{"b":2}]`, want: `[{"0":1},{"1":2}]`},
		"nested": {input: `[{"a":{"x":[1,2]}}]`, want: `[{"0":{"x":[1,2]}}]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jsonOf(t, tabular.Transpose(records(t, tt.input))))
		})
	}
}

func TestTransposeShapeAndValues(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1,"b":"x","c":true},{"a":2,"b":"y","c":false}]`)
	cols := tabular.Columns(tbl)
	out := tabular.Transpose(tbl)

	require.Len(t, out, len(cols))
	assert.Len(t, tabular.Columns(out), len(tbl))
	for r, row := range tbl {
		for c, col := range cols {
			want, _ := row.Get(col)
			got, ok := out[c].Get(tabular.Columns(out)[r])
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	}
}

func TestTransposeDropsBinary(t *testing.T) {
	t.Parallel()
	tbl := items(t, `[{"json":{"a":1},"binary":{"f":{"data":"aGk="}}}]`)
	out := tabular.Transpose(tbl)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Binary)
}

// --- Navigate into cell ---

func TestNavigateCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		opts  tabular.NavigateOptions
		want  string
	}{
		"scalar": {
			input: `[{"a":1,"b":2}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "a"},
			want:  `[{"a":1}]`,
		},
		"second row": {
			input: `[{"a":1},{"a":"two"}]`,
			opts:  tabular.NavigateOptions{Row: 1, Col: "a"},
			want:  `[{"a":"two"}]`,
		},
		"positional fallback": {
			input: `[{"0":"x","1":"y"}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "01"},
			want:  `[{"01":"y"}]`,
		},
		"exact key wins over position": {
			input: `[{"1":"pos","01":"exact"}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "01"},
			want:  `[{"01":"exact"}]`,
		},
		"missing column": {
			input: `[{"a":1}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "zzz"},
			want:  `[{"zzz":null}]`,
		},
		"object payload merges": {
			input: `[{"id":1,"info":{"name":"x","age":3}}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "info"},
			want:  `[{"name":"x","age":3}]`,
		},
		"expand payload wins": {
			input: `[{"id":1,"info":{"name":"x","id":9}}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "info", Expand: true},
			want:  `[{"id":9,"info":{"name":"x","id":9},"name":"x"}]`,
		},
		"expand scalar": {
			input: `[{"a":1,"b":2}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "b", Expand: true},
			want:  `[{"a":1,"b":2}]`,
		},
		"array without loop": {
			input: `[{"tags":["x","y"]}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "tags"},
			want:  `[{"tags":["x","y"]}]`,
		},
		"loop scalars": {
			input: `[{"tags":["x","y"]}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "tags", LoopArray: true},
			want:  `[{"tags":"x"},{"tags":"y"}]`,
		},
		"loop objects with expand": {
			input: `[{"id":1,"items":[{"v":1},{"v":2,"id":7}]}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "items", LoopArray: true, Expand: true},
			want: `[{"id":1,"items":[{"v":1},{"v":2,"id":7}],"v":1},` +
				`{"id":7,"items":[{"v":1},{"v":2,"id":7}],"v":2}]`,
		},
		"loop empty array": {
			input: `[{"tags":[]}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "tags", LoopArray: true},
			want:  `[]`,
		},
		"loop on scalar": {
			input: `[{"a":"x"}]`,
			opts:  tabular.NavigateOptions{Row: 0, Col: "a", LoopArray: true},
			want:  `[{"a":"x"}]`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabular.NavigateCell(records(t, tt.input), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsonOf(t, out))
		})
	}
}

func TestNavigateCellOutOfRange(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1},{"a":2}]`)
	tests := map[string]int{
		"negative": -1,
		"length":   2,
		"beyond":   10,
	}
	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabular.NavigateCell(tbl, tabular.NavigateOptions{Row: row, Col: "a"})
			require.ErrorIs(t, err, tabular.ErrOutOfRange)
			assert.Nil(t, out)
		})
	}
}

func TestNavigateCellEmptyTable(t *testing.T) {
	t.Parallel()
	_, err := tabular.NavigateCell(tabular.Table{}, tabular.NavigateOptions{Row: 0, Col: "a"})
	require.ErrorIs(t, err, tabular.ErrOutOfRange)
}

func TestNavigateCellCopiesBinary(t *testing.T) {
	t.Parallel()
	tbl := items(t, `[{"json":{"tags":["x","y"]},"binary":{"f":{"data":"aGk=","mimeType":"text/plain"}}}]`)
	out, err := tabular.NavigateCell(tbl, tabular.NavigateOptions{Row: 0, Col: "tags", LoopArray: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, tbl[0].Binary, r.Binary)
	}

	out[0].Binary["g"] = tabular.Attachment{Data: []byte("new")}
	assert.NotContains(t, tbl[0].Binary, "g")
	assert.NotContains(t, out[1].Binary, "g")
}

// --- Navigate into column ---

func TestNavigateColumn(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"n":1,"tags":["a","b"]},{"n":2,"tags":["c"]},{"n":3,"tags":"d"}]`)
	tests := map[string]struct {
		opts tabular.NavigateOptions
		want string
	}{
		"plain": {
			opts: tabular.NavigateOptions{Col: "tags"},
			want: `[{"tags":["a","b"]},{"tags":["c"]},{"tags":"d"}]`,
		},
		"loop": {
			opts: tabular.NavigateOptions{Col: "tags", LoopArray: true},
			want: `[{"tags":"a"},{"tags":"b"},{"tags":"c"},{"tags":"d"}]`,
		},
		"loop expand": {
			opts: tabular.NavigateOptions{Col: "tags", LoopArray: true, Expand: true},
			want: `[{"n":1,"tags":"a"},{"n":1,"tags":"b"},{"n":2,"tags":"c"},{"n":3,"tags":"d"}]`,
		},
		"row ignored": {
			opts: tabular.NavigateOptions{Row: 99, Col: "n"},
			want: `[{"n":1},{"n":2},{"n":3}]`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := tabular.NavigateColumn(tbl, func(int) tabular.NavigateOptions { return tt.opts })
			assert.Equal(t, tt.want, jsonOf(t, out))
		})
	}
}

func TestNavigateColumnPerRowOptions(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"n":1,"v":[1,2]},{"n":2,"v":[3,4]}]`)
	out := tabular.NavigateColumn(tbl, func(i int) tabular.NavigateOptions {
		return tabular.NavigateOptions{Col: "v", LoopArray: i == 0, Expand: i == 1}
	})
	assert.Equal(t, `[{"v":1},{"v":2},{"n":2,"v":[3,4]}]`, jsonOf(t, out))
}

func TestNavigateColumnEmpty(t *testing.T) {
	t.Parallel()
	out := tabular.NavigateColumn(tabular.Table{}, func(int) tabular.NavigateOptions {
		return tabular.NavigateOptions{Col: "a"}
	})
	assert.Empty(t, out)
}

// --- Navigate into row ---

func TestNavigateRow(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1,"b":["x","y"]},{"a":2,"b":["z"]},{"c":3}]`)
	tests := map[string]struct {
		opts tabular.NavigateOptions
		want string
	}{
		"plain": {
			opts: tabular.NavigateOptions{Row: 0},
			want: `[{"a":1},{"b":["x","y"]}]`,
		},
		"loop": {
			opts: tabular.NavigateOptions{Row: 0, LoopArray: true},
			want: `[{"a":1},{"b":"x"},{"b":"y"}]`,
		},
		// Expand projects each field's column across all rows, keyed by
		// row index, instead of merging the source row's other fields.
		"expand projects column": {
			opts: tabular.NavigateOptions{Row: 0, Expand: true},
			want: `[{"0":1,"1":2,"a":1},{"0":["x","y"],"1":["z"],"b":["x","y"]}]`,
		},
		"expand loop": {
			opts: tabular.NavigateOptions{Row: 1, Expand: true, LoopArray: true},
			want: `[{"0":1,"1":2,"a":2},{"0":["x","y"],"1":["z"],"b":"z"}]`,
		},
		"col ignored": {
			opts: tabular.NavigateOptions{Row: 2, Col: "a"},
			want: `[{"c":3}]`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabular.NavigateRow(tbl, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsonOf(t, out))
		})
	}
}

func TestNavigateRowOutOfRange(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1}]`)
	for _, row := range []int{-1, 1} {
		out, err := tabular.NavigateRow(tbl, tabular.NavigateOptions{Row: row})
		require.ErrorIs(t, err, tabular.ErrOutOfRange)
		assert.Nil(t, out)
	}
}

func TestNavigateRowBinaryFromSourceRow(t *testing.T) {
	t.Parallel()
	tbl := items(t, `[
		{"json":{"a":1,"b":2},"binary":{"f":{"data":"AQ=="}}},
		{"json":{"a":3},"binary":{"g":{"data":"Ag=="}}}
	]`)
	out, err := tabular.NavigateRow(tbl, tabular.NavigateOptions{Row: 0, Expand: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, tbl[0].Binary, r.Binary)
	}
}

func TestNavigateDispatch(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1,"b":2},{"a":3,"b":4}]`)
	tests := map[string]struct {
		typ  tabular.NavigateType
		want string
	}{
		"row":  {typ: tabular.NavigateRowType, want: `[{"a":3},{"b":4}]`},
		"col":  {typ: tabular.NavigateColType, want: `[{"a":1},{"a":3}]`},
		"cell": {typ: tabular.NavigateCellType, want: `[{"a":3}]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabular.Navigate(tbl, tt.typ, tabular.NavigateOptions{Row: 1, Col: "a"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsonOf(t, out))
		})
	}
}

func TestNavigateInvalidType(t *testing.T) {
	t.Parallel()
	_, err := tabular.Navigate(tabular.Table{}, "diagonal", tabular.NavigateOptions{})
	require.ErrorIs(t, err, tabular.ErrInvalidOption)
	assert.Contains(t, err.Error(), "valid options are: row, col, cell")
}

// --- Header demote / promote ---

func TestDemoteHeader(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"dense":  {input: `[{"a":1,"b":2},{"a":3,"b":4}]`, want: `[{"0":"a","1":"b"},{"0":1,"1":2},{"0":3,"1":4}]`},
		"sparse": {input: `[{"a":1},{"b":2}]`, want: `[{"0":"a","1":"b"},{"0":1},{"1":2}]`},
		"empty":  {input: `[]`, want: `[]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jsonOf(t, tabular.DemoteHeader(records(t, tt.input))))
		})
	}
}

func TestDemoteHeaderBinary(t *testing.T) {
	t.Parallel()
	tbl := items(t, `[{"json":{"a":1},"binary":{"f":{"data":"AQ=="}}}]`)
	out := tabular.DemoteHeader(tbl)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Binary)
	assert.Equal(t, tbl[0].Binary, out[1].Binary)
}

func TestPromoteHeader(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":       {input: `[]`, want: `[]`},
		"header only": {input: `[{"0":"a"}]`, want: `[]`},
		"basic": {
			input: `[{"0":"a","1":"b"},{"0":1,"1":2},{"0":3,"1":4}]`,
			want:  `[{"a":1,"b":2},{"a":3,"b":4}]`,
		},
		"missing values become null": {
			input: `[{"0":"a","1":"b"},{"0":1},{"1":2}]`,
			want:  `[{"a":1,"b":null},{"a":null,"b":2}]`,
		},
		"numeric header value": {
			input: `[{"0":7,"1":"b"},{"0":1,"1":2}]`,
			want:  `[{"7":1,"b":2}]`,
		},
		"header names both columns": {
			input: `[{"0":"x","1":"0"},{"0":1,"1":2}]`,
			want:  `[{"x":1,"0":2}]`,
		},
		"synthesized name collides": {
			input: `[{"1":"0"},{"0":1,"1":2}]`,
			want:  `[{"0_0":1,"0":2}]`,
		},
		"empty and null header values": {
			input: `[{"0":"","1":null},{"0":1,"1":2}]`,
			want:  `[{"0":1,"1":2}]`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jsonOf(t, tabular.PromoteHeader(records(t, tt.input))))
		})
	}
}

func TestHeaderNames(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		header string
		cols   []string
		want   []string
	}{
		"all named": {
			header: `{"a":"x","b":"y"}`,
			cols:   []string{"a", "b"},
			want:   []string{"x", "y"},
		},
		"positional": {
			header: `{}`,
			cols:   []string{"a", "b"},
			want:   []string{"0", "1"},
		},
		"suffix grows": {
			header: `{"2":"0","3":"0_0"}`,
			cols:   []string{"0", "1", "2", "3"},
			want:   []string{"0_1", "1", "0", "0_0"},
		},
		"header value reserves a position name": {
			header: `{"c":"1_0"}`,
			cols:   []string{"a", "b", "c", "d"},
			want:   []string{"0", "1", "1_0", "3"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var header tabular.Object
			require.NoError(t, header.UnmarshalJSON([]byte(tt.header)))
			assert.Equal(t, tt.want, tabular.HeaderNames(&header, tt.cols))
		})
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()
	tbl := records(t, `[{"a":1,"b":2},{"a":3,"b":4}]`)
	demoted := tabular.DemoteHeader(tbl)
	assert.Equal(t, `[{"0":"a","1":"b"},{"0":1,"1":2},{"0":3,"1":4}]`, jsonOf(t, demoted))

	header := demoted[0].JSON
	for i, col := range tabular.Columns(tbl) {
		v, ok := header.Get(tabular.Columns(demoted)[i])
		require.True(t, ok)
		assert.Equal(t, tabular.String(col), v)
	}

	assert.Equal(t, jsonOf(t, tbl), jsonOf(t, tabular.PromoteHeader(demoted)))
}

func TestPromoteHeaderBinary(t *testing.T) {
	t.Parallel()
	tbl := items(t, `[{"json":{"0":"a"}},{"json":{"0":1},"binary":{"f":{"data":"AQ=="}}}]`)
	out := tabular.PromoteHeader(tbl)
	require.Len(t, out, 1)
	assert.Equal(t, tbl[1].Binary, out[0].Binary)
}

// --- Count ---

func TestCount(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		typ   tabular.CountType
		key   string
		want  string
	}{
		"rows":        {input: `[{"a":1},{"a":2},{"a":3}]`, typ: tabular.CountRows, key: "n", want: `[{"n":3}]`},
		"rows empty":  {input: `[]`, typ: tabular.CountRows, key: "n", want: `[{"n":0}]`},
		"cols empty":  {input: `[]`, typ: tabular.CountCols, key: "stats.colCount", want: `[{"stats":{"colCount":0}}]`},
		"cols sparse": {input: `[{"a":1},{"b":2,"c":3}]`, typ: tabular.CountCols, key: "c", want: `[{"c":3}]`},
		"cells":       {input: `[{"a":1,"b":2},{"c":3}]`, typ: tabular.CountCells, key: "total", want: `[{"total":6}]`},
		"cells empty": {input: `[]`, typ: tabular.CountCells, key: "total", want: `[{"total":0}]`},
		"deep path":   {input: `[{"a":1}]`, typ: tabular.CountRows, key: "a.b.c", want: `[{"a":{"b":{"c":1}}}]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := tabular.Count(records(t, tt.input), tt.typ, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsonOf(t, out))
		})
	}
}

func TestCountDropsBinary(t *testing.T) {
	t.Parallel()
	out, err := tabular.Count(items(t, `[{"json":{"a":1},"binary":{"f":{"data":"AQ=="}}}]`), tabular.CountRows, "n")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Binary)
}

func TestCountInvalidType(t *testing.T) {
	t.Parallel()
	out, err := tabular.Count(records(t, `[{"a":1}]`), "bogus", "x")
	require.ErrorIs(t, err, tabular.ErrInvalidOption)
	assert.Contains(t, err.Error(), "valid options are: rows, cols, cells")
	assert.Nil(t, out)
}

// --- Purity ---

func TestOperationsDoNotModifyInput(t *testing.T) {
	t.Parallel()
	const src = `[{"json":{"a":1,"b":{"c":[1,2]},"d":["x"]},"binary":{"f":{"data":"AQ=="}}},{"json":{"a":2,"e":null}}]`
	tbl := items(t, src)
	before := itemsOf(t, tbl)

	ops := map[string]func(tabular.Table) (tabular.Table, error){
		"transpose": func(t tabular.Table) (tabular.Table, error) { return tabular.Transpose(t), nil },
		"demote":    func(t tabular.Table) (tabular.Table, error) { return tabular.DemoteHeader(t), nil },
		"promote":   func(t tabular.Table) (tabular.Table, error) { return tabular.PromoteHeader(t), nil },
		"cell": func(t tabular.Table) (tabular.Table, error) {
			return tabular.NavigateCell(t, tabular.NavigateOptions{Row: 0, Col: "b", Expand: true})
		},
		"row": func(t tabular.Table) (tabular.Table, error) {
			return tabular.NavigateRow(t, tabular.NavigateOptions{Row: 0, Expand: true, LoopArray: true})
		},
		"count": func(t tabular.Table) (tabular.Table, error) { return tabular.Count(t, tabular.CountCells, "n") },
	}
	for name, op := range ops {
		out, err := op(tbl)
		require.NoError(t, err, name)
		for _, r := range out {
			r.JSON.Set("mutated", tabular.Bool(true))
		}
		assert.Equal(t, before, itemsOf(t, tbl), name)
	}
}
