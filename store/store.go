// Package store is the durable state shared by the ledger, the price service
// and the event sink. Rows are keyed by agent name or by calendar date, so
// concurrent agents never contend on the same row and no cross-agent locking
// is needed.
package store

import "time"

// LogEntry is one append-only audit row owned by a single agent.
type LogEntry struct {
	Time     time.Time
	Name     string
	Category string
	Message  string
}

type Store interface {
	// WriteAccount upserts the full serialized account document, keyed by
	// lowercase name.
	WriteAccount(name string, doc []byte) error
	// ReadAccount returns the stored document for name (any case), or
	// (nil, nil) when no record exists.
	ReadAccount(name string) ([]byte, error)

	// WriteLog appends one audit row. Every call is immediately durable.
	WriteLog(name, category, message string) error
	// ReadLog returns the lastN most recent rows for name, oldest first.
	ReadLog(name string, lastN int) ([]LogEntry, error)

	// WriteMarket stores the symbol-to-close snapshot for a calendar date.
	WriteMarket(date string, prices map[string]float64) error
	// ReadMarket returns the snapshot for date, or (nil, nil) when absent.
	ReadMarket(date string) (map[string]float64, error)

	Close() error
}
