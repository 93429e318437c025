package floor

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/autotrader/account"
)

// Request carries everything a decision engine needs for one cycle.
// The account snapshot is read-only input; mutations go through Tools.
type Request struct {
	Agent       string
	Strategy    string
	Account     account.Account
	Mode        Mode
	Instruction string
	Now         time.Time
}

// Decider makes trading decisions for one run cycle and returns a
// short appraisal of what it did.
type Decider interface {
	Decide(ctx context.Context, req Request, tools *Tools) (string, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, req Request, tools *Tools) (string, error)

func (f DeciderFunc) Decide(ctx context.Context, req Request, tools *Tools) (string, error) {
	return f(ctx, req, tools)
}

// instruction renders the mode-specific directive put in front of the
// decision engine. The two modes are mutually exclusive in intent per
// cycle: prospecting hunts for new positions and is told not to
// rebalance, rebalancing reappraises and is told not to source new
// positions.
func instruction(mode Mode) string {
	if mode == Rebalancing {
		return "Reassess your current holdings against your strategy and rebalance as needed. Do not source new positions this cycle."
	}
	return "Research the market for new opportunities consistent with your strategy. You need not rebalance existing holdings this cycle."
}

// HoldDecider is the baseline engine: it reads the account report and
// holds. Useful for dry runs and as the default when no richer engine
// is wired in.
type HoldDecider struct{}

func (HoldDecider) Decide(ctx context.Context, req Request, tools *Tools) (string, error) {
	rep, err := tools.AccountReport(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Appraised %s portfolio at %.2f across %d positions; holding",
		req.Mode, rep.PortfolioValue, len(rep.Holdings)), nil
}
