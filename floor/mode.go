// Package floor runs the trading agents: each agent wraps a ledger,
// a decision engine with a per-cycle tool budget, and a two-state
// operating mode, and the scheduler fans every agent out on a fixed
// interval whenever the market gate allows.
package floor

// Mode is the behavioral posture an agent takes for one run cycle.
// Agents alternate between the two modes on every cycle.
type Mode int

const (
	// Prospecting cycles hunt for new positions.
	Prospecting Mode = iota
	// Rebalancing cycles reappraise what is already held.
	Rebalancing
)

// Next returns the opposite mode. The transition is unconditional:
// a failed cycle toggles the same as a successful one.
func (m Mode) Next() Mode {
	if m == Prospecting {
		return Rebalancing
	}
	return Prospecting
}

func (m Mode) String() string {
	if m == Rebalancing {
		return "rebalancing"
	}
	return "prospecting"
}
