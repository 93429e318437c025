// Package market serves equity prices at two freshness tiers. The eod
// tier works off a once-per-day closing snapshot held in a small cache
// and backed by the store; the minute tier asks the upstream source for
// every quote. Lookups never fail: a symbol missing from a snapshot
// prices at zero, and an unreachable upstream degrades to a randomized
// placeholder so the rest of the system keeps moving.
package market

import "context"

// Tier selects how fresh a price lookup must be.
type Tier string

const (
	TierEOD    Tier = "eod"
	TierMinute Tier = "minute"
)

// Source is an upstream quote provider.
type Source interface {
	// ClosingPrices returns previous-day closes for every symbol in the
	// configured universe.
	ClosingPrices(ctx context.Context) (map[string]float64, error)

	// LatestPrice returns the most recent trade price for one symbol.
	LatestPrice(ctx context.Context, symbol string) (float64, error)

	// MarketOpen reports whether the exchange is in a regular session.
	MarketOpen(ctx context.Context) (bool, error)
}

// SnapshotStore persists daily closing snapshots keyed by date.
type SnapshotStore interface {
	WriteMarket(date string, prices map[string]float64) error
	ReadMarket(date string) (map[string]float64, error)
}
