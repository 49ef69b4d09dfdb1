package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "leads.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreMissingTable(t *testing.T) {
	s := openTestSQLite(t)

	_, err := s.ReadAll(context.Background())
	if !errors.Is(err, domain.ErrStoreMissing) {
		t.Fatalf("expected ErrStoreMissing before reset, got %v", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	discovered := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	for _, name := range []string{"Acme Corp", "Beta LLC", "Gamma Ltd"} {
		if err := s.Append(ctx, domain.Entry{Name: name, DiscoveredAt: discovered}); err != nil {
			t.Fatalf("append %s: %v", name, err)
		}
	}

	entries, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(entries))
	}
	// Insertion order is preserved.
	if entries[0].Name != "Acme Corp" || entries[2].Name != "Gamma Ltd" {
		t.Fatalf("unexpected order: %v", entries)
	}
	if !entries[0].DiscoveredAt.Equal(discovered) {
		t.Fatalf("timestamp did not round-trip: got %v", entries[0].DiscoveredAt)
	}
}

func TestSQLiteStoreRejectsDuplicateName(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := s.Append(ctx, domain.Entry{Name: "Acme Corp", DiscoveredAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, domain.Entry{Name: "Acme Corp", DiscoveredAt: time.Now()}); err == nil {
		t.Fatal("expected the unique constraint to reject the duplicate")
	}
}

func TestSQLiteStoreResetClearsRows(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := s.Append(ctx, domain.Entry{Name: "Acme Corp", DiscoveredAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("second reset: %v", err)
	}

	entries, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("reset should clear rows, got %v", entries)
	}
}
