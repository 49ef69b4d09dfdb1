package ports

import (
	"context"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

// RowStore is the persisted, durable copy of record for discovered names.
// The first row of the store is reserved for the header.
type RowStore interface {
	// ReadAll returns every data row in the store, excluding the header.
	// Returns domain.ErrStoreMissing when the backing store does not
	// exist yet; any other error is fatal for the run since the ledger
	// cannot be seeded safely.
	ReadAll(ctx context.Context) ([]domain.Entry, error)

	// Append adds a single entry row at the end of the store. Errors are
	// transient from the caller's perspective; the rate-limited writer
	// applies the retry policy.
	Append(ctx context.Context, entry domain.Entry) error

	// Reset clears the store and reinitializes it with the header row.
	// Used only at store (re)creation, never during steady-state
	// ingestion.
	Reset(ctx context.Context) error
}
