package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/syncroexport/internal/config"
	"github.com/vk/syncroexport/internal/ctxlog"
	"github.com/vk/syncroexport/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ supplies the variables exposed as "env". Defaults to os.Environ.
	Environ func() []string
}

// Ensure Loader implements config.Loader.
var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// fileRoot is the schema of a single config file.
type fileRoot struct {
	APIKey     *string  `hcl:"api_key,optional"`
	Subdomain  *string  `hcl:"subdomain,optional"`
	Outfile    *string  `hcl:"outfile,optional"`
	CustomerID *string  `hcl:"customer_id,optional"`
	BaseURL    *string  `hcl:"base_url,optional"`
	Timeout    *string  `hcl:"timeout,optional"`
	Columns    []string `hcl:"columns,optional"`
}

// Load parses the file at path, or every .hcl file under it when path is a
// directory, and merges them in lexical order.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find config files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl config files found in %s", path)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	evalCtx := l.evalContext()
	parser := hclparse.NewParser()
	merged := &config.File{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		merged.Merge(&config.File{
			APIKey:     root.APIKey,
			Subdomain:  root.Subdomain,
			Outfile:    root.Outfile,
			CustomerID: root.CustomerID,
			BaseURL:    root.BaseURL,
			Timeout:    root.Timeout,
			Columns:    root.Columns,
			Sources:    []string{file},
		})
		logger.Debug("Successfully decoded config file.", "path", file)
	}

	return merged, nil
}

// evalContext exposes the environment as the object "env".
func (l *Loader) evalContext() *hcl.EvalContext {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	vars := make(map[string]cty.Value)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
