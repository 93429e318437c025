package market

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"
)

const dateLayout = "2006-01-02"

// ErrNoSource is returned by MarkOpen checks when no upstream source
// was configured.
var ErrNoSource = errors.New("market: no source configured")

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Tier  Tier
	Cache *SnapshotCache
	Store SnapshotStore
	Now   func() time.Time
}

// Service answers price lookups for trading agents. It owns the
// snapshot cache; callers share one Service rather than one cache.
type Service struct {
	tier  Tier
	src   Source
	cache *SnapshotCache
	store SnapshotStore
	now   func() time.Time
}

// NewService builds a Service over src. A nil src is allowed and keeps
// every lookup on the randomized fallback path, which is how offline
// runs are wired.
func NewService(src Source, opts Options) *Service {
	s := &Service{
		tier:  opts.Tier,
		src:   src,
		cache: opts.Cache,
		store: opts.Store,
		now:   opts.Now,
	}
	if s.tier == "" {
		s.tier = TierEOD
	}
	if s.cache == nil {
		s.cache = NewSnapshotCache(DefaultCacheSize)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Price returns the current lookup price for symbol. It never fails:
// when the upstream cannot be reached the price degrades to a random
// whole-dollar value in [1, 100]. A symbol absent from a healthy
// snapshot prices at exactly zero so the ledger can reject it.
func (s *Service) Price(ctx context.Context, symbol string) float64 {
	if s.src == nil {
		return fallbackPrice()
	}

	if s.tier == TierMinute {
		price, err := s.src.LatestPrice(ctx, symbol)
		if err != nil {
			log.Printf("market: latest price %s: %v", symbol, err)
			return fallbackPrice()
		}
		return price
	}

	snap, err := s.snapshotFor(ctx, s.now().Format(dateLayout))
	if err != nil {
		log.Printf("market: snapshot: %v", err)
		return fallbackPrice()
	}
	return snap[symbol]
}

// MarketOpen reports whether the exchange is in a regular session. The
// open check is always live, never cached.
func (s *Service) MarketOpen(ctx context.Context) (bool, error) {
	if s.src == nil {
		return false, ErrNoSource
	}
	return s.src.MarketOpen(ctx)
}

// snapshotFor resolves the closing snapshot for date, checking the
// cache, then the store, then the upstream. Fresh snapshots are pushed
// back down both layers; a store write failure is logged and otherwise
// ignored since the snapshot itself is good.
func (s *Service) snapshotFor(ctx context.Context, date string) (map[string]float64, error) {
	if snap, ok := s.cache.Get(date); ok {
		return snap, nil
	}

	if s.store != nil {
		snap, err := s.store.ReadMarket(date)
		if err != nil {
			log.Printf("market: read snapshot %s: %v", date, err)
		} else if snap != nil {
			s.cache.Put(date, snap)
			return snap, nil
		}
	}

	snap, err := s.src.ClosingPrices(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(date, snap)
	if s.store != nil {
		if err := s.store.WriteMarket(date, snap); err != nil {
			log.Printf("market: write snapshot %s: %v", date, err)
		}
	}
	return snap, nil
}

func fallbackPrice() float64 {
	return float64(rand.Intn(100) + 1)
}
