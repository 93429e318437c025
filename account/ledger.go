package account

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// InitialBalance is the cash every fresh account starts with.
	InitialBalance = 10000.0
	// Spread is the fixed transaction-cost percentage applied against the
	// trader on both sides: buys fill above the market price, sells below.
	Spread = 0.002
)

// Pricer resolves a symbol to its current price. A price of exactly 0 marks
// an unknown symbol.
type Pricer interface {
	Price(ctx context.Context, symbol string) float64
}

// Recorder receives the ledger's audit events.
type Recorder interface {
	Record(name, category, message string)
}

// Store is the slice of the persistent store the ledger needs.
type Store interface {
	WriteAccount(name string, doc []byte) error
	ReadAccount(name string) ([]byte, error)
}

// Options tune a ledger. Zero values fall back to the package defaults.
type Options struct {
	InitialBalance float64
	Spread         float64
	Now            func() time.Time
}

// Ledger owns one account. All operations are serialized on an internal
// mutex. State is persisted before it is committed in memory, so a failed
// write never leaves a partial update observable anywhere.
type Ledger struct {
	mu      sync.Mutex
	acct    Account
	store   Store
	prices  Pricer
	events  Recorder
	initial float64
	spread  float64
	now     func() time.Time
}

// Open returns the ledger for the named account, creating and persisting a
// fresh one with the initial balance if no record exists. Lookup is
// case-insensitive; names are stored lowercase.
func Open(name string, st Store, prices Pricer, events Recorder, opts Options) (*Ledger, error) {
	if opts.InitialBalance == 0 {
		opts.InitialBalance = InitialBalance
	}
	if opts.Spread == 0 {
		opts.Spread = Spread
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Ledger{
		store:   st,
		prices:  prices,
		events:  events,
		initial: opts.InitialBalance,
		spread:  opts.Spread,
		now:     opts.Now,
	}

	doc, err := st.ReadAccount(name)
	if err != nil {
		return nil, fmt.Errorf("read account %q: %w", name, err)
	}
	if doc == nil {
		l.acct = Account{
			Name:         strings.ToLower(name),
			Balance:      l.initial,
			Holdings:     map[string]int{},
			Transactions: []Transaction{},
			ValueSeries:  []ValuePoint{},
		}
		if err := l.persist(l.acct); err != nil {
			return nil, err
		}
		return l, nil
	}

	if err := json.Unmarshal(doc, &l.acct); err != nil {
		return nil, fmt.Errorf("decode account %q: %w", name, err)
	}
	if l.acct.Holdings == nil {
		l.acct.Holdings = map[string]int{}
	}
	return l, nil
}

// Name returns the lowercase account name.
func (l *Ledger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.Name
}

// Balance returns the current cash balance.
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.Balance
}

// Holdings returns a copy of the current holdings.
func (l *Ledger) Holdings() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int, len(l.acct.Holdings))
	for sym, qty := range l.acct.Holdings {
		out[sym] = qty
	}
	return out
}

// Snapshot returns a deep copy of the full account state.
func (l *Ledger) Snapshot() Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct.clone()
}

// Strategy returns the current strategy text.
func (l *Ledger) Strategy() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("Retrieved strategy")
	return l.acct.Strategy
}

// Deposit adds funds to the account.
func (l *Ledger) Deposit(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("deposit %.2f: %w", amount, ErrInvalidAmount)
	}

	next := l.acct.clone()
	next.Balance += amount
	if err := l.persist(next); err != nil {
		return err
	}
	l.acct = next
	l.record("Deposited %.2f", amount)
	return nil
}

// Withdraw removes funds, refusing to take the balance negative.
func (l *Ledger) Withdraw(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.acct.Balance {
		return fmt.Errorf("withdraw %.2f: %w", amount, ErrInsufficientFunds)
	}

	next := l.acct.clone()
	next.Balance -= amount
	if err := l.persist(next); err != nil {
		return err
	}
	l.acct = next
	l.record("Withdrew %.2f", amount)
	return nil
}

// Buy fills a purchase at the current price plus spread. The balance
// decrement, holdings increment and transaction append commit together or
// not at all.
func (l *Ledger) Buy(ctx context.Context, symbol string, quantity int, rationale string) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	price := l.prices.Price(ctx, symbol)
	if price == 0 {
		return Report{}, fmt.Errorf("buy %s: %w", symbol, ErrUnknownSymbol)
	}

	buyPrice := price * (1 + l.spread)
	cost := buyPrice * float64(quantity)
	if cost > l.acct.Balance {
		return Report{}, fmt.Errorf("buy %d %s: %w", quantity, symbol, ErrInsufficientFunds)
	}

	next := l.acct.clone()
	next.Holdings[symbol] += quantity
	next.Transactions = append(next.Transactions, Transaction{
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     buyPrice,
		Timestamp: l.now().Format(timeLayout),
		Rationale: rationale,
	})
	next.Balance -= cost

	if err := l.persist(next); err != nil {
		return Report{}, err
	}
	l.acct = next
	l.record("Bought %d of %s", quantity, symbol)

	return l.reportLocked(ctx)
}

// Sell fills a sale at the current price minus spread. The holdings entry is
// removed entirely when its quantity reaches zero.
func (l *Ledger) Sell(ctx context.Context, symbol string, quantity int, rationale string) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.acct.Holdings[symbol] < quantity {
		return Report{}, fmt.Errorf("sell %d %s: %w", quantity, symbol, ErrInsufficientHoldings)
	}

	price := l.prices.Price(ctx, symbol)
	sellPrice := price * (1 - l.spread)
	proceeds := sellPrice * float64(quantity)

	next := l.acct.clone()
	next.Holdings[symbol] -= quantity
	if next.Holdings[symbol] == 0 {
		delete(next.Holdings, symbol)
	}
	next.Transactions = append(next.Transactions, Transaction{
		Symbol:    symbol,
		Quantity:  -quantity,
		Price:     sellPrice,
		Timestamp: l.now().Format(timeLayout),
		Rationale: rationale,
	})
	next.Balance += proceeds

	if err := l.persist(next); err != nil {
		return Report{}, err
	}
	l.acct = next
	l.record("Sold %d of %s", quantity, symbol)

	return l.reportLocked(ctx)
}

// PortfolioValue is the cash balance plus the marked value of every holding,
// recomputed on demand.
func (l *Ledger) PortfolioValue(ctx context.Context) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.portfolioValueLocked(ctx)
}

// ProfitLoss nets the given portfolio value against the cumulative
// transaction notionals and the current balance. Note the balance is
// subtracted even though it is already a component of the portfolio
// value; downstream reports depend on that exact figure.
func (l *Ledger) ProfitLoss(portfolioValue float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profitLossLocked(portfolioValue)
}

// Report computes the valuation, appends a sample to the portfolio-value
// series and persists it. Reporting is a minor mutation, not a read.
func (l *Ledger) Report(ctx context.Context) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rep, err := l.reportLocked(ctx)
	if err != nil {
		return Report{}, err
	}
	l.record("Retrieved account details")
	return rep, nil
}

// ChangeStrategy replaces the strategy text.
func (l *Ledger) ChangeStrategy(strategy string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.acct.clone()
	next.Strategy = strategy
	if err := l.persist(next); err != nil {
		return err
	}
	l.acct = next
	l.record("Changed strategy")
	return nil
}

// Reset restores the initial balance, clears holdings, history and the value
// series, and installs the given strategy. Accounts are never deleted, only
// reset.
func (l *Ledger) Reset(strategy string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := Account{
		Name:         l.acct.Name,
		Balance:      l.initial,
		Strategy:     strategy,
		Holdings:     map[string]int{},
		Transactions: []Transaction{},
		ValueSeries:  []ValuePoint{},
	}
	if err := l.persist(next); err != nil {
		return err
	}
	l.acct = next
	return nil
}

func (l *Ledger) portfolioValueLocked(ctx context.Context) float64 {
	total := l.acct.Balance
	for symbol, qty := range l.acct.Holdings {
		total += l.prices.Price(ctx, symbol) * float64(qty)
	}
	return total
}

func (l *Ledger) profitLossLocked(portfolioValue float64) float64 {
	var spent float64
	for _, t := range l.acct.Transactions {
		spent += t.Total()
	}
	return portfolioValue - spent - l.acct.Balance
}

func (l *Ledger) reportLocked(ctx context.Context) (Report, error) {
	value := l.portfolioValueLocked(ctx)

	next := l.acct.clone()
	next.ValueSeries = append(next.ValueSeries, ValuePoint{
		Timestamp: l.now().Format(timeLayout),
		Value:     value,
	})
	if err := l.persist(next); err != nil {
		return Report{}, err
	}
	l.acct = next

	return Report{
		Account:        l.acct.clone(),
		PortfolioValue: value,
		ProfitLoss:     l.profitLossLocked(value),
	}, nil
}

func (l *Ledger) persist(a Account) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode account %q: %w", a.Name, err)
	}
	if err := l.store.WriteAccount(a.Name, doc); err != nil {
		return fmt.Errorf("write account %q: %w", a.Name, err)
	}
	return nil
}

func (l *Ledger) record(format string, args ...any) {
	if l.events == nil {
		return
	}
	l.events.Record(l.acct.Name, "account", fmt.Sprintf(format, args...))
}
