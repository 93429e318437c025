package floor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/autotrader/account"
	"github.com/rustyeddy/autotrader/notify"
	"github.com/rustyeddy/autotrader/trace"
)

// AgentOptions tunes one agent. Zero values fall back to defaults.
type AgentOptions struct {
	Budget int
	Now    func() time.Time
}

// Agent pairs one ledger with a decision engine and an alternating
// operating mode. Agents are safe to run concurrently with each other;
// a single agent runs one cycle at a time.
type Agent struct {
	name     string
	ledger   *account.Ledger
	prices   account.Pricer
	decider  Decider
	events   *trace.Recorder
	notifier notify.Notifier
	budget   int
	now      func() time.Time

	mu   sync.Mutex
	mode Mode
}

func NewAgent(name string, ledger *account.Ledger, prices account.Pricer, decider Decider, events *trace.Recorder, notifier notify.Notifier, opts AgentOptions) *Agent {
	a := &Agent{
		name:     name,
		ledger:   ledger,
		prices:   prices,
		decider:  decider,
		events:   events,
		notifier: notifier,
		budget:   opts.Budget,
		now:      opts.Now,
	}
	if a.events == nil {
		a.events = trace.NewRecorder(nil)
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

func (a *Agent) Name() string { return a.name }

// Mode reports the mode the next Run will use.
func (a *Agent) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run executes one cycle under a fresh correlation id. The mode
// toggles for the next cycle no matter how this one ends.
func (a *Agent) Run(ctx context.Context) error {
	a.mu.Lock()
	mode := a.mode
	a.mode = a.mode.Next()
	a.mu.Unlock()

	corr := trace.MakeCorrelationID(a.name)
	label := fmt.Sprintf("%s-%s", a.name, mode)

	a.events.RecordCorrelated(corr, "trace", "Started "+label)
	appraisal, err := a.cycle(ctx, mode)
	if err != nil {
		a.events.RecordCorrelated(corr, "error", err.Error())
		a.events.RecordCorrelated(corr, "trace", "Ended "+label)
		return fmt.Errorf("run %s: %w", label, err)
	}
	a.events.RecordCorrelated(corr, "agent", appraisal)
	a.events.RecordCorrelated(corr, "trace", "Ended "+label)
	return nil
}

func (a *Agent) cycle(ctx context.Context, mode Mode) (string, error) {
	snap := a.ledger.Snapshot()
	// The value series grows without bound and carries nothing the
	// decision engine needs.
	snap.ValueSeries = nil

	req := Request{
		Agent:       a.name,
		Strategy:    snap.Strategy,
		Account:     snap,
		Mode:        mode,
		Instruction: instruction(mode),
		Now:         a.now(),
	}
	tools := newTools(a.ledger, a.prices, a.notifier, a.budget, a.now)
	return a.decider.Decide(ctx, req, tools)
}
