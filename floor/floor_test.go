package floor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/autotrader/account"
)

// Shared fixtures for the floor tests.

type mapPricer map[string]float64

func (p mapPricer) Price(_ context.Context, symbol string) float64 {
	return p[symbol]
}

type docStore struct {
	docs map[string][]byte
}

func newDocStore() *docStore {
	return &docStore{docs: map[string][]byte{}}
}

func (s *docStore) WriteAccount(name string, doc []byte) error {
	s.docs[name] = append([]byte(nil), doc...)
	return nil
}

func (s *docStore) ReadAccount(name string) ([]byte, error) {
	return s.docs[name], nil
}

type capturedPush struct {
	agent   string
	message string
}

type pushCapture struct {
	pushes []capturedPush
}

func (p *pushCapture) Push(_ context.Context, agent, message string) error {
	p.pushes = append(p.pushes, capturedPush{agent, message})
	return nil
}

func testClock() time.Time {
	return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
}

func newTestLedger(t *testing.T, name string, prices mapPricer) *account.Ledger {
	t.Helper()

	l, err := account.Open(name, newDocStore(), prices, nil, account.Options{Now: testClock})
	require.NoError(t, err)
	return l
}
