package config

// File is the merged content of one or more configuration files. Nil
// pointers and nil slices mean "not set".
type File struct {
	APIKey     *string
	Subdomain  *string
	Outfile    *string
	CustomerID *string
	BaseURL    *string
	Timeout    *string
	Columns    []string

	// Sources lists the files that contributed, in load order.
	Sources []string
}

// Merge copies every value set in other over f. Later files win.
func (f *File) Merge(other *File) {
	if other == nil {
		return
	}
	mergeString(&f.APIKey, other.APIKey)
	mergeString(&f.Subdomain, other.Subdomain)
	mergeString(&f.Outfile, other.Outfile)
	mergeString(&f.CustomerID, other.CustomerID)
	mergeString(&f.BaseURL, other.BaseURL)
	mergeString(&f.Timeout, other.Timeout)
	if other.Columns != nil {
		f.Columns = append([]string(nil), other.Columns...)
	}
	f.Sources = append(f.Sources, other.Sources...)
}

func mergeString(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
