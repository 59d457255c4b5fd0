package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/invoicehero/internal/models"
)

func openTestStore(t *testing.T) (*Store, *Repositories) {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return store, NewRepositories(store)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	_, repos := openTestStore(t)
	invoices, err := repos.Invoices.ListByUser(context.Background(), "demo")
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestOpenRejectsCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpenReadsLegacyDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `{
  "users": {"demo": {"id": "demo", "email": "demo@demo.com", "name": "Demo User", "createdAt": "2024-01-05T10:00:00.000Z"}},
  "invoices": {"inv_a": {"id": "inv_a", "userId": "demo", "clientId": "cli_a", "number": "INV-1001",
    "items": [{"description": "Logo", "qty": "2", "price": "50"}], "amount": "100", "status": "pending",
    "dueDate": "2024-02-01", "createdAt": "2024-01-05T10:00:00.000Z"}},
  "clients": {"cli_a": {"id": "cli_a", "userId": "demo", "name": "Acme", "createdAt": "2024-01-05T09:00:00.000Z"}},
  "settings": {"demo": {"name": "Studio", "paymentTerms": "14"}}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	store, err := Open(path)
	require.NoError(t, err)
	repos := NewRepositories(store)
	ctx := context.Background()

	invoice, err := repos.Invoices.FindByIDForUser(ctx, "inv_a", "demo")
	require.NoError(t, err)
	assert.Equal(t, models.Amount(100), invoice.Amount)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, models.Amount(2), invoice.Items[0].Qty)

	settings, err := repos.Settings.FindByUser(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Studio", settings.Name)
	require.NotNil(t, settings.PaymentTerms)
	assert.Equal(t, models.FlexibleInt(14), *settings.PaymentTerms)
}

func TestOpenAcceptsNumericTextFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `{
  "invoices": {"inv_n": {"id": "inv_n", "userId": "demo", "number": 1001, "notes": 5, "amount": 10, "createdAt": "2024-01-05T10:00:00.000Z"}},
  "clients": {"cli_n": {"id": "cli_n", "userId": "demo", "name": "Acme", "phone": 5551234, "createdAt": "2024-01-05T09:00:00.000Z"}}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	store, err := Open(path)
	require.NoError(t, err)
	repos := NewRepositories(store)
	ctx := context.Background()

	invoice, err := repos.Invoices.FindByIDForUser(ctx, "inv_n", "demo")
	require.NoError(t, err)
	assert.Equal(t, "1001", invoice.Number)
	assert.Equal(t, "5", invoice.Notes)

	client, err := repos.Clients.FindByIDForUser(ctx, "cli_n", "demo")
	require.NoError(t, err)
	assert.Equal(t, "5551234", client.Phone)
}

func TestMutationsPersistAcrossReopen(t *testing.T) {
	t.Parallel()

	store, repos := openTestStore(t)
	ctx := context.Background()

	client := models.Client{ID: "cli_1", UserID: "alice", Name: "Acme", CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Clients.Create(ctx, &client))
	invoice := models.Invoice{ID: "inv_1", UserID: "alice", ClientID: "cli_1", Amount: 100, Status: models.InvoiceStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Invoices.Create(ctx, &invoice))

	_, err := repos.Invoices.UpdateForUser(ctx, "inv_1", "alice", func(current *models.Invoice) {
		current.Status = models.InvoiceStatusPaid
	})
	require.NoError(t, err)

	reopened, err := Open(store.Path())
	require.NoError(t, err)
	stored, err := NewRepositories(reopened).Invoices.FindByIDForUser(ctx, "inv_1", "alice")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
	assert.Equal(t, models.Amount(100), stored.Amount)
}

func TestOwnershipIsEnforced(t *testing.T) {
	t.Parallel()

	_, repos := openTestStore(t)
	ctx := context.Background()

	invoice := models.Invoice{ID: "inv_1", UserID: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Invoices.Create(ctx, &invoice))

	_, err := repos.Invoices.FindByIDForUser(ctx, "inv_1", "bob")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
	_, err = repos.Invoices.UpdateForUser(ctx, "inv_1", "bob", func(*models.Invoice) {})
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
	assert.ErrorIs(t, repos.Invoices.DeleteForUser(ctx, "inv_1", "bob"), models.ErrRecordNotFound)

	duplicate := invoice
	assert.ErrorIs(t, repos.Invoices.Create(ctx, &duplicate), models.ErrRecordDuplicate)
}

func TestFailedWriteRollsBack(t *testing.T) {
	t.Parallel()

	store, repos := openTestStore(t)
	ctx := context.Background()

	first := models.Client{ID: "cli_1", UserID: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Clients.Create(ctx, &first))

	// A directory at the document path makes the final rename fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.Path(), "keep"), []byte("x"), 0o600))

	second := models.Client{ID: "cli_2", UserID: "alice", CreatedAt: time.Now().UTC()}
	require.Error(t, repos.Clients.Create(ctx, &second))

	clients, err := repos.Clients.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "cli_1", clients[0].ID)
}

func TestConcurrentCreatesAreAllPersisted(t *testing.T) {
	t.Parallel()

	store, repos := openTestStore(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for index := 0; index < writers; index++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			invoice := models.Invoice{ID: fmt.Sprintf("inv_%02d", index), UserID: "alice", CreatedAt: time.Now().UTC()}
			errs <- repos.Invoices.Create(ctx, &invoice)
		}(index)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	reopened, err := Open(store.Path())
	require.NoError(t, err)
	invoices, err := NewRepositories(reopened).Invoices.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, invoices, writers)
}

func TestReadDocumentRequiresExistingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":{"u1":{"id":"u1","email":"u1@demo.com"}}}`), 0o600))

	document, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Len(t, document.Users, 1)
	assert.NotNil(t, document.Invoices)
	assert.NotNil(t, document.Settings)
}
