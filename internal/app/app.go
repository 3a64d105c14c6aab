package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/syncroexport/internal/csvexport"
	"github.com/vk/syncroexport/internal/syncro"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	client  *syncro.Client
	columns []csvexport.Column
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW; each App gets its own logger tagged with a run id.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", uuid.NewString())
	logger.Debug("Logger configured successfully.")

	columns, err := csvexport.Columns(cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("invalid column selection: %w", err)
	}

	opts := []syncro.Option{syncro.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, syncro.WithBaseURL(cfg.BaseURL))
	}
	client, err := syncro.NewClient(cfg.Subdomain, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("API client created.", "subdomain", cfg.Subdomain, "columns", len(columns))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		client:  client,
		columns: columns,
	}, nil
}
