// Package store provides the persisted store backends: a local CSV file,
// a spreadsheet-service REST adapter, and a sqlite database.
package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

// CSVStore implements ports.RowStore on a local CSV file. The first row
// is the header. This is the file-backed variant of the pipeline.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the CSV file at path. The file is
// not touched until the first operation.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// ReadAll returns every data row, excluding the header. A missing file
// yields domain.ErrStoreMissing.
func (s *CSVStore) ReadAll(ctx context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrStoreMissing
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var entries []domain.Entry
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		entries = append(entries, domain.EntryFromRow(row))
	}
	return entries, nil
}

// Append adds a single entry row at the end of the file.
func (s *CSVStore) Append(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(entry.Row()); err != nil {
		return fmt.Errorf("append %s: %w", s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}

// Reset truncates the file and writes the header row.
func (s *CSVStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(domain.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	return w.Error()
}
