package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/invoicehero/internal/docstore"
	"github.com/terraincognita07/invoicehero/internal/services"
)

// RunImportDocumentCommand copies a legacy db.json document into repos.
// Records that already exist are left untouched.
func RunImportDocumentCommand(ctx context.Context, path string, repos services.Repositories, out io.Writer) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("document path is required")
	}

	document, err := docstore.ReadDocument(path)
	if err != nil {
		return err
	}

	summary, err := services.NewImportService(repos).Import(ctx, document)
	if err != nil {
		return fmt.Errorf("import document: %w", err)
	}

	fmt.Fprintf(out, "Imported %s\n", path)
	fmt.Fprintf(out, "  users:    %d\n", summary.UsersCreated)
	fmt.Fprintf(out, "  clients:  %d\n", summary.ClientsCreated)
	fmt.Fprintf(out, "  invoices: %d\n", summary.InvoicesCreated)
	fmt.Fprintf(out, "  settings: %d merged\n", summary.SettingsMerged)
	fmt.Fprintf(out, "  skipped:  %d\n", summary.Skipped)
	return nil
}
