package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vk/syncroexport/internal/app"
	"github.com/vk/syncroexport/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError reports a problem with the arguments; nothing has touched the
// network yet.
func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// options mirrors every flag. Each option is reachable under a short and a
// long name.
type options struct {
	apiKey     string
	subdomain  string
	outfile    string
	customerID string
	configPath string
	columns    string
	baseURL    string
	timeout    time.Duration
	logFormat  string
	logLevel   string
	version    bool
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// When --config is given, loader reads it and flags override its values.
func Parse(args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("syncroexport", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
syncroexport - Export contacts from Syncro RMM to a CSV file.

Usage:
  syncroexport -k API_KEY -s SUBDOMAIN -o OUTFILE [-c CUSTOMER_ID] [options]

The output file is overwritten if it exists.

Options:
`)
		flagSet.PrintDefaults()
	}

	var o options
	flagSet.StringVar(&o.apiKey, "api-key", "", "Your Syncro API key. It needs access to contacts and customers.")
	flagSet.StringVar(&o.apiKey, "k", "", "Your Syncro API key (shorthand).")
	flagSet.StringVar(&o.subdomain, "subdomain", "", "Your Syncro subdomain, the part before .syncromsp.com.")
	flagSet.StringVar(&o.subdomain, "s", "", "Your Syncro subdomain (shorthand).")
	flagSet.StringVar(&o.outfile, "outfile", "", "Path of the CSV file to write (overwrites existing files).")
	flagSet.StringVar(&o.outfile, "o", "", "Path of the CSV file to write (shorthand).")
	flagSet.StringVar(&o.customerID, "customer-id", "", "Only export contacts that belong to this customer ID.")
	flagSet.StringVar(&o.customerID, "c", "", "Only export contacts of this customer ID (shorthand).")
	flagSet.StringVar(&o.configPath, "config", "", "Path to an .hcl config file or a directory of them.")
	flagSet.StringVar(&o.columns, "columns", "", "Comma-separated list of columns to export. Default: all.")
	flagSet.StringVar(&o.baseURL, "base-url", "", "Override the API root URL derived from the subdomain.")
	flagSet.DurationVar(&o.timeout, "timeout", 0, "Per-request timeout, e.g. 30s. 0 disables it.")
	flagSet.StringVar(&o.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&o.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.BoolVar(&o.version, "version", false, "Print version information and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if o.version {
		fmt.Fprintln(output, BuildInfo().String())
		return nil, true, nil
	}
	if flagSet.NArg() > 0 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := app.Config{
		APIKey:     o.apiKey,
		Subdomain:  o.subdomain,
		Outfile:    o.outfile,
		CustomerID: o.customerID,
		BaseURL:    o.baseURL,
		Timeout:    o.timeout,
		Columns:    splitColumns(o.columns),
	}

	if o.configPath != "" {
		if loader == nil {
			return nil, false, usageError("--config is not supported in this build")
		}
		file, err := loader.Load(context.Background(), o.configPath)
		if err != nil {
			return nil, false, usageError("invalid config: %s", err)
		}
		if err := applyFile(&cfg, file, set); err != nil {
			return nil, false, usageError("invalid config: %s", err)
		}
		slog.Debug("Config file applied.", "sources", file.Sources)
	}

	logFormat := strings.ToLower(o.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(o.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel
	slog.Debug("CLI parameter validation complete.")

	validated, err := app.NewConfig(cfg)
	if err != nil {
		flagSet.Usage()
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "outfile", validated.Outfile, "customer_id", validated.CustomerID)
	return validated, false, nil
}

// applyFile fills every option that was not given on the command line from
// the config file.
func applyFile(cfg *app.Config, file *config.File, set map[string]bool) error {
	fromFile := func(dst *string, src *string, names ...string) {
		if src == nil {
			return
		}
		for _, n := range names {
			if set[n] {
				return
			}
		}
		*dst = *src
	}
	fromFile(&cfg.APIKey, file.APIKey, "api-key", "k")
	fromFile(&cfg.Subdomain, file.Subdomain, "subdomain", "s")
	fromFile(&cfg.Outfile, file.Outfile, "outfile", "o")
	fromFile(&cfg.CustomerID, file.CustomerID, "customer-id", "c")
	fromFile(&cfg.BaseURL, file.BaseURL, "base-url")

	if file.Columns != nil && !set["columns"] {
		cfg.Columns = append([]string(nil), file.Columns...)
	}
	if file.Timeout != nil && !set["timeout"] {
		d, err := time.ParseDuration(*file.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}

func splitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var cols []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
