package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/autotrader/store"
)

type stubPricer struct {
	prices map[string]float64
}

func (p stubPricer) Price(_ context.Context, symbol string) float64 {
	return p.prices[symbol]
}

type memStore struct {
	docs     map[string][]byte
	failNext bool
}

func newMemStore() *memStore {
	return &memStore{docs: map[string][]byte{}}
}

func (m *memStore) WriteAccount(name string, doc []byte) error {
	if m.failNext {
		m.failNext = false
		return errors.New("store down")
	}
	m.docs[name] = append([]byte(nil), doc...)
	return nil
}

func (m *memStore) ReadAccount(name string) ([]byte, error) {
	return m.docs[name], nil
}

type captureRecorder struct {
	messages []string
}

func (r *captureRecorder) Record(name, category, message string) {
	r.messages = append(r.messages, message)
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
}

func newTestLedger(t *testing.T, prices map[string]float64) (*Ledger, *memStore) {
	t.Helper()

	st := newMemStore()
	l, err := Open("Warren", st, stubPricer{prices: prices}, &captureRecorder{}, Options{Now: fixedNow})
	require.NoError(t, err)
	return l, st
}

func TestOpenCreatesFreshAccount(t *testing.T) {
	t.Parallel()

	l, st := newTestLedger(t, nil)

	assert.Equal(t, "warren", l.Name())
	assert.Equal(t, InitialBalance, l.Balance())
	assert.Empty(t, l.Holdings())

	// The fresh account is persisted before Open returns.
	assert.Contains(t, st.docs, "warren")
}

func TestOpenRoundTripSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.db")
	st, err := store.NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	prices := stubPricer{prices: map[string]float64{"AAPL": 100.0}}

	l, err := Open("Warren", st, prices, nil, Options{Now: fixedNow})
	require.NoError(t, err)
	require.NoError(t, l.Deposit(500))
	_, err = l.Buy(context.Background(), "AAPL", 3, "round trip")
	require.NoError(t, err)
	want := l.Snapshot()

	// Reloading by any case yields field-for-field equal state.
	again, err := Open("WARREN", st, prices, nil, Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, want, again.Snapshot())
}

func TestDepositValidation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, nil)

	err := l.Deposit(-5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, InitialBalance, l.Balance())

	require.NoError(t, l.Deposit(250))
	assert.InDelta(t, InitialBalance+250, l.Balance(), 1e-9)
}

func TestWithdrawValidation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, nil)

	err := l.Withdraw(InitialBalance + 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, InitialBalance, l.Balance())

	require.NoError(t, l.Withdraw(1000))
	assert.InDelta(t, InitialBalance-1000, l.Balance(), 1e-9)
}

func TestBuyPostconditions(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	rep, err := l.Buy(context.Background(), "AAPL", 5, "looks cheap")
	require.NoError(t, err)

	assert.InDelta(t, InitialBalance-100.2*5, l.Balance(), 1e-9)
	assert.Equal(t, map[string]int{"AAPL": 5}, l.Holdings())

	require.Len(t, rep.Transactions, 1)
	tx := rep.Transactions[0]
	assert.Equal(t, "AAPL", tx.Symbol)
	assert.Equal(t, 5, tx.Quantity)
	assert.InDelta(t, 100.2, tx.Price, 1e-9)
	assert.Equal(t, "looks cheap", tx.Rationale)

	// Buy returns a report, which itself records a value sample.
	assert.Len(t, rep.ValueSeries, 1)
}

func TestThreeBuys(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	for i := 0; i < 3; i++ {
		_, err := l.Buy(context.Background(), "AAPL", 5, "accumulate")
		require.NoError(t, err)
	}

	assert.InDelta(t, 8497.0, l.Balance(), 1e-9)
	assert.Equal(t, map[string]int{"AAPL": 15}, l.Holdings())
	assert.Len(t, l.Snapshot().Transactions, 3)
}

func TestBuyUnknownSymbol(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{})
	before := l.Snapshot()

	_, err := l.Buy(context.Background(), "ZZZZ", 1, "typo")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Equal(t, before, l.Snapshot())
}

func TestBuyInsufficientFunds(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})
	before := l.Snapshot()

	_, err := l.Buy(context.Background(), "AAPL", 1000, "all in")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, before, l.Snapshot())
}

func TestSellPostconditions(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	_, err := l.Buy(context.Background(), "AAPL", 5, "entry")
	require.NoError(t, err)
	balance := l.Balance()

	rep, err := l.Sell(context.Background(), "AAPL", 2, "trim")
	require.NoError(t, err)

	assert.InDelta(t, balance+99.8*2, l.Balance(), 1e-9)
	assert.Equal(t, map[string]int{"AAPL": 3}, l.Holdings())

	require.Len(t, rep.Transactions, 2)
	tx := rep.Transactions[1]
	assert.Equal(t, -2, tx.Quantity)
	assert.InDelta(t, 99.8, tx.Price, 1e-9)
}

func TestSellRemovesEmptyHolding(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	_, err := l.Buy(context.Background(), "AAPL", 5, "entry")
	require.NoError(t, err)
	_, err = l.Sell(context.Background(), "AAPL", 5, "exit")
	require.NoError(t, err)

	assert.NotContains(t, l.Holdings(), "AAPL")
}

func TestSellInsufficientHoldings(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})
	before := l.Snapshot()

	_, err := l.Sell(context.Background(), "AAPL", 1, "never owned it")
	assert.ErrorIs(t, err, ErrInsufficientHoldings)
	assert.Equal(t, before, l.Snapshot())
}

func TestPortfolioValue(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0, "MSFT": 50.0})

	_, err := l.Buy(context.Background(), "AAPL", 5, "")
	require.NoError(t, err)
	_, err = l.Buy(context.Background(), "MSFT", 10, "")
	require.NoError(t, err)

	want := l.Balance() + 5*100.0 + 10*50.0
	assert.InDelta(t, want, l.PortfolioValue(context.Background()), 1e-9)
}

func TestProfitLossFormula(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	_, err := l.Buy(context.Background(), "AAPL", 5, "")
	require.NoError(t, err)

	value := l.PortfolioValue(context.Background())

	// value minus the signed transaction notionals minus the balance; the
	// balance is netted out a second time on top of its share of the value.
	want := value - 5*100.2 - l.Balance()
	assert.InDelta(t, want, l.ProfitLoss(value), 1e-9)
	assert.InDelta(t, -1.0, l.ProfitLoss(value), 1e-9)
}

func TestReportAppendsValueSample(t *testing.T) {
	t.Parallel()

	l, st := newTestLedger(t, nil)

	rep, err := l.Report(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.ValueSeries, 1)
	assert.InDelta(t, InitialBalance, rep.PortfolioValue, 1e-9)

	rep, err = l.Report(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.ValueSeries, 2)

	// The sample is durable, not just in memory.
	assert.Contains(t, string(st.docs["warren"]), "portfolio_value_time_series")
}

func TestChangeStrategy(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, nil)

	require.NoError(t, l.ChangeStrategy("value investing, patiently"))
	assert.Equal(t, "value investing, patiently", l.Snapshot().Strategy)
}

func TestReset(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, map[string]float64{"AAPL": 100.0})

	_, err := l.Buy(context.Background(), "AAPL", 5, "")
	require.NoError(t, err)
	require.NoError(t, l.Reset("fresh start"))

	got := l.Snapshot()
	assert.Equal(t, InitialBalance, got.Balance)
	assert.Empty(t, got.Holdings)
	assert.Empty(t, got.Transactions)
	assert.Empty(t, got.ValueSeries)
	assert.Equal(t, "fresh start", got.Strategy)
}

func TestFailedPersistLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	l, err := Open("Warren", st, stubPricer{prices: map[string]float64{"AAPL": 100.0}}, nil, Options{Now: fixedNow})
	require.NoError(t, err)
	before := l.Snapshot()

	st.failNext = true
	_, err = l.Buy(context.Background(), "AAPL", 5, "")
	require.Error(t, err)

	assert.Equal(t, before, l.Snapshot())
}
