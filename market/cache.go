package market

import "sync"

// DefaultCacheSize keeps today's snapshot plus one stale date, enough
// to ride out lookups that straddle midnight.
const DefaultCacheSize = 2

// SnapshotCache holds a handful of daily snapshots in memory, evicting
// the oldest date once full. Safe for concurrent use.
type SnapshotCache struct {
	mu    sync.Mutex
	cap   int
	order []string
	data  map[string]map[string]float64
}

func NewSnapshotCache(capacity int) *SnapshotCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &SnapshotCache{
		cap:  capacity,
		data: make(map[string]map[string]float64, capacity),
	}
}

func (c *SnapshotCache) Get(date string) (map[string]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, ok := c.data[date]
	return snap, ok
}

func (c *SnapshotCache) Put(date string, prices map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[date]; ok {
		c.data[date] = prices
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.order = append(c.order, date)
	c.data[date] = prices
}

func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
