// Package account holds the financial state of one trading agent and is the
// single source of truth for its balance, holdings and transaction history.
package account

// Timestamps in account documents use a human-readable layout rather than
// RFC 3339; reports and stored series depend on it.
const timeLayout = "2006-01-02 15:04:05"

// Transaction is an immutable record of one committed trade. Quantity is
// positive for buys and negative for sells; Price already carries the spread.
type Transaction struct {
	Symbol    string  `json:"symbol"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
	Rationale string  `json:"rationale"`
}

// Total is the signed notional of the transaction.
func (t Transaction) Total() float64 {
	return float64(t.Quantity) * t.Price
}

// ValuePoint is one sample of the portfolio-value time series.
type ValuePoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Account is the serialized state of one agent's account. Holdings entries
// are removed when their quantity reaches zero; Transactions and ValueSeries
// are append-only.
type Account struct {
	Name         string         `json:"name"`
	Balance      float64        `json:"balance"`
	Strategy     string         `json:"strategy"`
	Holdings     map[string]int `json:"holdings"`
	Transactions []Transaction  `json:"transactions"`
	ValueSeries  []ValuePoint   `json:"portfolio_value_time_series"`
}

// Report is a full account snapshot plus the two derived valuation fields.
type Report struct {
	Account
	PortfolioValue float64 `json:"total_portfolio_value"`
	ProfitLoss     float64 `json:"total_profit_loss"`
}

func (a Account) clone() Account {
	out := a

	out.Holdings = make(map[string]int, len(a.Holdings))
	for sym, qty := range a.Holdings {
		out.Holdings[sym] = qty
	}

	out.Transactions = make([]Transaction, len(a.Transactions))
	copy(out.Transactions, a.Transactions)

	out.ValueSeries = make([]ValuePoint, len(a.ValueSeries))
	copy(out.ValueSeries, a.ValueSeries)

	return out
}
