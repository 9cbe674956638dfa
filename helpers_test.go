package tabular_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lublak/tabular"
	"github.com/stretchr/testify/require"
)

// records decodes a JSON array of objects into a table.
func records(t *testing.T, src string) tabular.Table {
	t.Helper()
	tbl, err := tabular.DecodeRecords(strings.NewReader(src))
	require.NoError(t, err)
	return tbl
}

// items decodes a JSON array of {json, binary} items into a table.
func items(t *testing.T, src string) tabular.Table {
	t.Helper()
	tbl, err := tabular.DecodeItems(strings.NewReader(src))
	require.NoError(t, err)
	return tbl
}

// jsonOf renders the records of tbl as compact JSON without a trailing newline.
func jsonOf(t *testing.T, tbl tabular.Table) string {
	t.Helper()
	data, err := tabular.Marshal(tabular.FormatJSON, tbl)
	require.NoError(t, err)
	return strings.TrimSuffix(string(data), "\n")
}

// itemsOf renders tbl as compact JSON items.
func itemsOf(t *testing.T, tbl tabular.Table) string {
	t.Helper()
	data, err := tabular.Marshal(tabular.FormatJSON, tbl, tabular.WithItems())
	require.NoError(t, err)
	return strings.TrimSuffix(string(data), "\n")
}

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")
