package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration found at path, which may be a single file
	// or a directory of files, and returns the merged result.
	Load(ctx context.Context, path string) (*File, error)
}
