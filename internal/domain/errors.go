package domain

import "errors"

// Domain errors returned by the public API, checked with errors.Is.
var (
	// ErrStoreMissing is returned by a store read when the backing
	// spreadsheet, file or table does not exist yet. The caller may
	// recover by resetting the store with its header row.
	ErrStoreMissing = errors.New("sponsorscout: store not initialized")

	// ErrStoreInit is returned when the persisted store cannot be read at
	// startup. The ledger cannot be seeded safely, so the run aborts
	// before any scraping begins.
	ErrStoreInit = errors.New("sponsorscout: store initialization failed")

	// ErrWriteExhausted is returned by the writer after the retry bound
	// is spent on a single entry. The name is not recorded in the ledger
	// and may be re-attempted on a future run.
	ErrWriteExhausted = errors.New("sponsorscout: write retries exhausted")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("sponsorscout: invalid configuration")
)
