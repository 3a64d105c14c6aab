package csvexport

import (
	"encoding/csv"
	"io"

	"github.com/vk/syncroexport/internal/syncro"
)

// Writer encodes contacts as CSV records using a fixed column set.
type Writer struct {
	csv  *csv.Writer
	cols []Column
	row  []string
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, cols []Column) *Writer {
	return &Writer{
		csv:  csv.NewWriter(w),
		cols: cols,
		row:  make([]string, len(cols)),
	}
}

// WriteHeader writes the column names as the first record.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Names(w.cols))
}

// Write writes one contact as a record.
func (w *Writer) Write(c syncro.Contact) error {
	for i, col := range w.cols {
		w.row[i] = col.Value(c)
	}
	return w.csv.Write(w.row)
}

// Flush writes any buffered data and reports the first write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
