package market

import (
	"context"
	"fmt"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
)

// DefaultProbe is the symbol quoted to decide whether the exchange is
// in a regular session.
const DefaultProbe = "SPY"

// YahooSource quotes a fixed universe of symbols off Yahoo Finance.
type YahooSource struct {
	universe []string
	probe    string
}

// NewYahooSource builds a source over the given symbol universe. An
// empty probe falls back to DefaultProbe.
func NewYahooSource(universe []string, probe string) *YahooSource {
	if probe == "" {
		probe = DefaultProbe
	}
	return &YahooSource{universe: universe, probe: probe}
}

// ClosingPrices fetches previous-day closes for the whole universe in
// one batch request.
func (y *YahooSource) ClosingPrices(_ context.Context) (map[string]float64, error) {
	prices := make(map[string]float64, len(y.universe))

	iter := quote.List(y.universe)
	for iter.Next() {
		q := iter.Quote()
		prices[q.Symbol] = q.RegularMarketPreviousClose
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return prices, nil
}

// LatestPrice returns the live regular-market price for symbol,
// falling back to the previous close outside trading hours.
func (y *YahooSource) LatestPrice(_ context.Context, symbol string) (float64, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("get quote %s: %w", symbol, err)
	}
	if q.RegularMarketPrice != 0 {
		return q.RegularMarketPrice, nil
	}
	return q.RegularMarketPreviousClose, nil
}

// MarketOpen quotes the probe symbol and checks its session state.
func (y *YahooSource) MarketOpen(_ context.Context) (bool, error) {
	q, err := quote.Get(y.probe)
	if err != nil {
		return false, fmt.Errorf("get quote %s: %w", y.probe, err)
	}
	return q.MarketState == finance.MarketStateRegular, nil
}
