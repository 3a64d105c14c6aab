package csvexport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/syncroexport/internal/syncro"
)

// ErrUnknownColumn is returned when a requested column is not in the registry.
var ErrUnknownColumn = errors.New("unknown column")

// Column is one exported CSV field.
type Column struct {
	Name  string
	Value func(syncro.Contact) string
}

func str(get func(syncro.Contact) *string) func(syncro.Contact) string {
	return func(c syncro.Contact) string { return syncro.Str(get(c)) }
}

// registry holds every column that can be exported, keyed by header name.
var registry = map[string]Column{}

// DefaultColumns is the header written when no column selection is given.
var DefaultColumns = []Column{
	{"id", func(c syncro.Contact) string { return strconv.FormatInt(c.ID, 10) }},
	{"customer_id", syncro.Contact.CustomerRef},
	{"name", str(func(c syncro.Contact) *string { return c.Name })},
	{"title", str(func(c syncro.Contact) *string { return c.Title })},
	{"email", str(func(c syncro.Contact) *string { return c.Email })},
	{"phone", str(func(c syncro.Contact) *string { return c.Phone })},
	{"mobile", str(func(c syncro.Contact) *string { return c.Mobile })},
	{"extension", str(func(c syncro.Contact) *string { return c.Extension })},
	{"address1", str(func(c syncro.Contact) *string { return c.Address1 })},
	{"address2", str(func(c syncro.Contact) *string { return c.Address2 })},
	{"city", str(func(c syncro.Contact) *string { return c.City })},
	{"state", str(func(c syncro.Contact) *string { return c.State })},
	{"zip", str(func(c syncro.Contact) *string { return c.Zip })},
	{"notes", str(func(c syncro.Contact) *string { return c.Notes })},
	{"opt_out", func(c syncro.Contact) string {
		if c.OptOut == nil {
			return ""
		}
		return strconv.FormatBool(*c.OptOut)
	}},
	{"created_at", str(func(c syncro.Contact) *string { return c.CreatedAt })},
	{"updated_at", str(func(c syncro.Contact) *string { return c.UpdatedAt })},
}

// phonesColumn joins every phone number of a contact. It is opt-in.
var phonesColumn = Column{"phones", func(c syncro.Contact) string {
	return strings.Join(c.Phones(), "; ")
}}

func init() {
	for _, col := range DefaultColumns {
		registry[col.Name] = col
	}
	registry[phonesColumn.Name] = phonesColumn
}

// Columns resolves column names to columns, keeping the given order. An empty
// selection yields DefaultColumns.
func Columns(names []string) ([]Column, error) {
	if len(names) == 0 {
		return DefaultColumns, nil
	}

	cols := make([]Column, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		col, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, raw)
		}
		if seen[name] {
			return nil, fmt.Errorf("column %q selected more than once", name)
		}
		seen[name] = true
		cols = append(cols, col)
	}
	return cols, nil
}

// Names returns the header names of cols.
func Names(cols []Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}
