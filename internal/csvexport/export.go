package csvexport

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/syncroexport/internal/ctxlog"
	"github.com/vk/syncroexport/internal/syncro"
)

// ContactSource is a single-use stream of contacts. *syncro.Pager[syncro.Contact]
// satisfies it.
type ContactSource interface {
	Next(ctx context.Context) bool
	Item() syncro.Contact
	Err() error
}

// Export writes every contact from src to the CSV file at path and returns
// the number of data rows written.
//
// The first contact is pulled before the file is touched, so a source that
// fails immediately leaves an existing file alone. After that the file is
// truncated and rewritten; a failure part way through leaves whatever was
// written so far and returns the error.
func Export(ctx context.Context, path string, cols []Column, src ContactSource) (n int, err error) {
	logger := ctxlog.FromContext(ctx)

	hasFirst := src.Next(ctx)
	if err := src.Err(); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	logger.Debug("Output file opened.", "path", path)

	w := NewWriter(f, cols)
	if err := w.WriteHeader(); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	if hasFirst {
		for {
			if err := w.Write(src.Item()); err != nil {
				return n, fmt.Errorf("failed to write row %d: %w", n+1, err)
			}
			n++
			if !src.Next(ctx) {
				break
			}
		}
		if err := src.Err(); err != nil {
			// Rows fetched before the failure stay on disk.
			if ferr := w.Flush(); ferr != nil {
				return n, errors.Join(err, fmt.Errorf("failed to write output file: %w", ferr))
			}
			return n, err
		}
	}

	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Debug("Output file written.", "path", path, "rows", n)
	return n, nil
}
