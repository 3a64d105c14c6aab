package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

func TestFile_Merge(t *testing.T) {
	t.Parallel()

	base := &File{
		APIKey:    ptr("base-key"),
		Subdomain: ptr("acme"),
		Columns:   []string{"id"},
		Sources:   []string{"a.hcl"},
	}
	base.Merge(&File{
		Subdomain:  ptr("globex"),
		CustomerID: ptr("7"),
		Sources:    []string{"b.hcl"},
	})
	base.Merge(nil)

	want := &File{
		APIKey:     ptr("base-key"),
		Subdomain:  ptr("globex"),
		CustomerID: ptr("7"),
		Columns:    []string{"id"},
		Sources:    []string{"a.hcl", "b.hcl"},
	}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Errorf("merged file mismatch (-want +got):\n%s", diff)
	}
}
