package domain

import "time"

// Entry is a single recorded business name with its discovery time.
// The name is the uniqueness key: the persisted store never holds two
// entries with the same name text (case-sensitive exact match).
type Entry struct {
	Name         string
	DiscoveredAt time.Time
}

// Header is the reserved first row of the persisted store.
var Header = []string{"Company Name", "Timestamp"}

// Row renders the entry as a persisted store row.
func (e Entry) Row() []string {
	return []string{e.Name, e.DiscoveredAt.UTC().Format(time.RFC3339)}
}

// EntryFromRow parses a persisted store row back into an Entry.
// A malformed timestamp yields a zero DiscoveredAt; the name column is the
// only field ledger seeding depends on.
func EntryFromRow(row []string) Entry {
	var e Entry
	if len(row) > 0 {
		e.Name = row[0]
	}
	if len(row) > 1 {
		if ts, err := time.Parse(time.RFC3339, row[1]); err == nil {
			e.DiscoveredAt = ts
		}
	}
	return e
}
