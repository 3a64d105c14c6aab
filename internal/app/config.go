package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	APIKey     string
	Subdomain  string
	Outfile    string
	CustomerID string // optional; empty exports every customer

	BaseURL string        // optional override of the subdomain-derived API root
	Columns []string      // optional column selection; empty means all
	Timeout time.Duration // per request; zero disables

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var missing []string
	if cfg.APIKey == "" {
		missing = append(missing, "-k/--api-key")
	}
	if cfg.Subdomain == "" && cfg.BaseURL == "" {
		missing = append(missing, "-s/--subdomain")
	}
	if cfg.Outfile == "" {
		missing = append(missing, "-o/--outfile")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	if strings.ContainsAny(cfg.Subdomain, "/:?#@ ") {
		return nil, fmt.Errorf("invalid subdomain %q: expected the part before .syncromsp.com", cfg.Subdomain)
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("timeout must not be negative")
	}
	if cfg.CustomerID != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(cfg.CustomerID), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid customer id %q: expected a positive number", cfg.CustomerID)
		}
		cfg.CustomerID = strconv.FormatInt(id, 10)
	}

	cfg.Columns = append([]string(nil), cfg.Columns...)
	return &cfg, nil
}
