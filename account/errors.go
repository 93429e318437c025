package account

import "errors"

// Validation failures are synchronous and typed; callers correct the request
// and resubmit. None of them leave partial state behind.
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("not enough shares held")
	ErrUnknownSymbol        = errors.New("unrecognized symbol")
)
