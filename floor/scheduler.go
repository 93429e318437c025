package floor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rustyeddy/autotrader/pkg/id"
	"github.com/rustyeddy/autotrader/trace"
)

// DefaultInterval is how often the scheduler ticks.
const DefaultInterval = 30 * time.Minute

// Gate decides whether a tick may run agents.
type Gate interface {
	MarketOpen(ctx context.Context) (bool, error)
}

// SchedulerOptions tunes the scheduler. Force runs every tick
// regardless of what the gate says.
type SchedulerOptions struct {
	Interval time.Duration
	Force    bool
}

// Scheduler drives all agents on a fixed interval. Each tick consults
// the market gate and, if allowed, runs every agent concurrently and
// waits for all of them before sleeping again.
type Scheduler struct {
	agents   []*Agent
	gate     Gate
	events   *trace.Recorder
	interval time.Duration
	force    bool
}

func NewScheduler(agents []*Agent, gate Gate, events *trace.Recorder, opts SchedulerOptions) *Scheduler {
	s := &Scheduler{
		agents:   agents,
		gate:     gate,
		events:   events,
		interval: opts.Interval,
		force:    opts.Force,
	}
	if s.events == nil {
		s.events = trace.NewRecorder(nil)
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	return s
}

// Run ticks immediately, then on every interval, until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.Tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// Tick runs one scheduling cycle. When the gate says the market is
// closed, or the gate itself cannot be evaluated, no agent runs and no
// agent's mode toggles.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.shouldRun(ctx) {
		return
	}

	cycle := id.New()
	s.events.Record("floor", "floor", fmt.Sprintf("Cycle %s started with %d agents", cycle, len(s.agents)))

	var wg sync.WaitGroup
	for _, a := range s.agents {
		wg.Add(1)
		go func(a *Agent) {
			defer wg.Done()
			if err := a.Run(ctx); err != nil {
				log.Printf("floor: %v", err)
			}
		}(a)
	}
	wg.Wait()

	s.events.Record("floor", "floor", fmt.Sprintf("Cycle %s finished", cycle))
}

func (s *Scheduler) shouldRun(ctx context.Context) bool {
	if s.force || s.gate == nil {
		return true
	}
	open, err := s.gate.MarketOpen(ctx)
	if err != nil {
		log.Printf("floor: market gate: %v", err)
		return false
	}
	return open
}
