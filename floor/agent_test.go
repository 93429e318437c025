package floor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeNext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Rebalancing, Prospecting.Next())
	assert.Equal(t, Prospecting, Rebalancing.Next())
	assert.Equal(t, "prospecting", Prospecting.String())
	assert.Equal(t, "rebalancing", Rebalancing.String())
}

func TestRunTogglesModeOnSuccess(t *testing.T) {
	t.Parallel()

	ledger := newTestLedger(t, "warren", nil)
	a := NewAgent("warren", ledger, mapPricer{}, HoldDecider{}, nil, nil, AgentOptions{})

	require.Equal(t, Prospecting, a.Mode())
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, Rebalancing, a.Mode())
}

func TestRunTogglesModeOnFailure(t *testing.T) {
	t.Parallel()

	boom := DeciderFunc(func(context.Context, Request, *Tools) (string, error) {
		return "", errors.New("engine crashed")
	})

	ledger := newTestLedger(t, "warren", nil)
	a := NewAgent("warren", ledger, mapPricer{}, boom, nil, nil, AgentOptions{})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, Rebalancing, a.Mode())

	// The failed mode is named in the error.
	assert.Contains(t, err.Error(), "warren-prospecting")
}

func TestRunAlternatesInstruction(t *testing.T) {
	t.Parallel()

	var reqs []Request
	spy := DeciderFunc(func(_ context.Context, req Request, _ *Tools) (string, error) {
		reqs = append(reqs, req)
		return "noted", nil
	})

	ledger := newTestLedger(t, "cathie", nil)
	a := NewAgent("cathie", ledger, mapPricer{}, spy, nil, nil, AgentOptions{})

	require.NoError(t, a.Run(context.Background()))
	require.NoError(t, a.Run(context.Background()))
	require.NoError(t, a.Run(context.Background()))

	require.Len(t, reqs, 3)
	assert.Equal(t, Prospecting, reqs[0].Mode)
	assert.Equal(t, Rebalancing, reqs[1].Mode)
	assert.Equal(t, Prospecting, reqs[2].Mode)

	assert.Contains(t, reqs[0].Instruction, "need not rebalance")
	assert.Contains(t, reqs[1].Instruction, "not source new positions")
	assert.NotEqual(t, reqs[0].Instruction, reqs[1].Instruction)
}

func TestRunSnapshotExcludesValueSeries(t *testing.T) {
	t.Parallel()

	ledger := newTestLedger(t, "george", nil)
	_, err := ledger.Report(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, ledger.Snapshot().ValueSeries)

	var got Request
	spy := DeciderFunc(func(_ context.Context, req Request, _ *Tools) (string, error) {
		got = req
		return "ok", nil
	})

	a := NewAgent("george", ledger, mapPricer{}, spy, nil, nil, AgentOptions{Now: testClock})
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "george", got.Agent)
	assert.Empty(t, got.Account.ValueSeries)
	assert.Equal(t, testClock(), got.Now)
}
