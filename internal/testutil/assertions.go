package testutil

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadCSV parses the file at path with a standard CSV reader.
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "output is not valid CSV")
	return records
}

// AssertColumnEquals checks that every data row of records has want in the
// named column.
func AssertColumnEquals(t *testing.T, records [][]string, column, want string) {
	t.Helper()

	require.NotEmpty(t, records, "missing header row")
	idx := -1
	for i, name := range records[0] {
		if name == column {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx, "column %q not in header %v", column, records[0])

	for i, row := range records[1:] {
		require.Equal(t, want, row[idx], "row %d column %q", i+1, column)
	}
}
