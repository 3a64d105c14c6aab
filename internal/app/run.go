package app

import (
	"context"
	"fmt"

	"github.com/vk/syncroexport/internal/csvexport"
	"github.com/vk/syncroexport/internal/ctxlog"
)

// Run exports the contacts selected by the configuration to the output file.
// Any failure aborts the export and is returned unchanged in kind.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.CustomerID == "" {
		a.logger.Info("Downloading all contacts in Syncro.")
	} else {
		ctx = ctxlog.With(ctx, "customer_id", a.config.CustomerID)
		ctxlog.FromContext(ctx).Info("Downloading all contacts for customer in Syncro.")
	}

	contacts := a.client.Contacts(a.config.CustomerID)
	n, err := csvexport.Export(ctx, a.config.Outfile, a.columns, contacts)
	if err != nil {
		return fmt.Errorf("export failed after %d contacts: %w", n, err)
	}

	a.logger.Info("Export finished.", "contacts", n, "pages", contacts.Pages(), "path", a.config.Outfile)
	fmt.Fprintf(a.outW, "Contacts saved to %s\n", a.config.Outfile)
	return nil
}
