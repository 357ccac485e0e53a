// Package store persists the portable transaction collection as a JSON
// file of records, the format shared with report exports and external
// tooling.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fils/internal/core"
)

// ErrIndexOutOfRange is returned when a category correction names a
// position outside the stored collection.
var ErrIndexOutOfRange = errors.New("transaction index out of range")

// FileStore reads and writes a transaction collection at a fixed path.
type FileStore struct {
	path string
}

func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the collection, replacing any previous content.
func (s *FileStore) Save(txs []core.Transaction) error {
	data, err := json.MarshalIndent(core.ToRecords(txs), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write transactions file: %w", err)
	}
	return nil
}

// Load reads the collection back. A missing file is an empty
// collection, not an error; malformed dates inside records degrade to
// "no date" per the record format.
func (s *FileStore) Load() ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transactions file: %w", err)
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse transactions file: %w", err)
	}
	return core.FromRecords(records), nil
}

// UpdateCategory corrects the category of the transaction at index and
// persists the collection. Returns the updated transaction.
func (s *FileStore) UpdateCategory(index int, category string) (core.Transaction, error) {
	txs, err := s.Load()
	if err != nil {
		return core.Transaction{}, err
	}
	if index < 0 || index >= len(txs) {
		return core.Transaction{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(txs))
	}

	txs[index].Category = category
	if err := s.Save(txs); err != nil {
		return core.Transaction{}, err
	}
	return txs[index], nil
}
