package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/invoicehero/internal/docstore"
)

func newTestRepositories(t *testing.T) Repositories {
	t.Helper()

	store, err := docstore.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("open document store: %v", err)
	}
	repos := docstore.NewRepositories(store)
	return Repositories{
		Users:    repos.Users,
		Clients:  repos.Clients,
		Invoices: repos.Invoices,
		Settings: repos.Settings,
	}
}

func fixedClock(now string) func() time.Time {
	parsed, err := time.Parse(time.RFC3339, now)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}
