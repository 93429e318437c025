package floor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/autotrader/account"
	"github.com/rustyeddy/autotrader/notify"
)

// DefaultBudget is how many tool calls a decision engine gets per run
// cycle before being cut off.
const DefaultBudget = 30

// ErrBudgetExhausted is returned by every tool call once the cycle's
// budget is spent.
var ErrBudgetExhausted = errors.New("tool budget exhausted")

// Tools is the operation surface handed to a decision engine for one
// run cycle. Every call draws down a shared budget; trades committed
// before exhaustion stay committed.
type Tools struct {
	ledger   *account.Ledger
	prices   account.Pricer
	notifier notify.Notifier
	now      func() time.Time

	mu        sync.Mutex
	remaining int
}

func newTools(ledger *account.Ledger, prices account.Pricer, notifier notify.Notifier, budget int, now func() time.Time) *Tools {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return &Tools{
		ledger:    ledger,
		prices:    prices,
		notifier:  notifier,
		now:       now,
		remaining: budget,
	}
}

func (t *Tools) spend(op string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining <= 0 {
		return fmt.Errorf("%s: %w", op, ErrBudgetExhausted)
	}
	t.remaining--
	return nil
}

// Remaining reports how much of the budget is left.
func (t *Tools) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Tools) GetBalance() (float64, error) {
	if err := t.spend("get balance"); err != nil {
		return 0, err
	}
	return t.ledger.Balance(), nil
}

func (t *Tools) GetHoldings() (map[string]int, error) {
	if err := t.spend("get holdings"); err != nil {
		return nil, err
	}
	return t.ledger.Holdings(), nil
}

func (t *Tools) Buy(ctx context.Context, symbol string, quantity int, rationale string) (account.Report, error) {
	if err := t.spend("buy"); err != nil {
		return account.Report{}, err
	}
	return t.ledger.Buy(ctx, symbol, quantity, rationale)
}

func (t *Tools) Sell(ctx context.Context, symbol string, quantity int, rationale string) (account.Report, error) {
	if err := t.spend("sell"); err != nil {
		return account.Report{}, err
	}
	return t.ledger.Sell(ctx, symbol, quantity, rationale)
}

func (t *Tools) ChangeStrategy(strategy string) error {
	if err := t.spend("change strategy"); err != nil {
		return err
	}
	return t.ledger.ChangeStrategy(strategy)
}

func (t *Tools) ReadStrategy() (string, error) {
	if err := t.spend("read strategy"); err != nil {
		return "", err
	}
	return t.ledger.Strategy(), nil
}

func (t *Tools) AccountReport(ctx context.Context) (account.Report, error) {
	if err := t.spend("account report"); err != nil {
		return account.Report{}, err
	}
	return t.ledger.Report(ctx)
}

func (t *Tools) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	if err := t.spend("lookup price"); err != nil {
		return 0, err
	}
	return t.prices.Price(ctx, symbol), nil
}

func (t *Tools) CurrentDateTime() (string, error) {
	if err := t.spend("current datetime"); err != nil {
		return "", err
	}
	return t.now().Format("2006-01-02 15:04:05"), nil
}

func (t *Tools) Notify(ctx context.Context, message string) error {
	if err := t.spend("notify"); err != nil {
		return err
	}
	return t.notifier.Push(ctx, t.ledger.Name(), message)
}
