// Package docstore keeps every record in one JSON document on disk, the
// layout the first InvoiceHero releases wrote to db.json.
//
// All mutations go through a single writer lock and are persisted with a
// temp-file rename. A failed write is returned to the caller and the
// in-memory document is rolled back to the last state that reached disk.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/terraincognita07/invoicehero/internal/models"
)

type Store struct {
	path      string
	mu        sync.RWMutex
	document  *models.Document
	persisted []byte
}

// Open loads the document at path. A missing file is an empty store; a file
// that exists but cannot be decoded is an error.
func Open(path string) (*Store, error) {
	store := &Store{path: path, document: models.NewDocument()}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	document, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}

	store.document = document
	store.persisted = raw
	return store, nil
}

// ReadDocument decodes the document at path without opening a store. Unlike
// Open, a missing file is an error.
func ReadDocument(path string) (*models.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	document, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}
	return document, nil
}

func decodeDocument(raw []byte) (*models.Document, error) {
	document := models.NewDocument()
	if err := json.Unmarshal(raw, document); err != nil {
		return nil, err
	}
	document.Normalize()
	return document, nil
}

func (store *Store) Path() string {
	return store.path
}

func (store *Store) read(fn func(document *models.Document)) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	fn(store.document)
}

// mutate applies fn under the writer lock and persists the result. fn must
// not touch the document when it returns an error. If the write fails the
// change is undone.
func (store *Store) mutate(fn func(document *models.Document) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := fn(store.document); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(store.document, "", "  ")
	if err != nil {
		store.rollback()
		return fmt.Errorf("encode document: %w", err)
	}
	if err := writeFileAtomic(store.path, encoded); err != nil {
		store.rollback()
		return fmt.Errorf("write document %s: %w", store.path, err)
	}
	store.persisted = encoded
	return nil
}

func (store *Store) rollback() {
	restored := models.NewDocument()
	if len(store.persisted) > 0 {
		if err := json.Unmarshal(store.persisted, restored); err != nil {
			return
		}
		restored.Normalize()
	}
	store.document = restored
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tempPath := temp.Name()
	defer os.Remove(tempPath)

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}
