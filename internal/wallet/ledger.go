package wallet

import "errors"

var (
	// ErrInsufficientFunds indicates a debit larger than the balance.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")
	// ErrInvalidAmount indicates a non-positive debit or credit.
	ErrInvalidAmount = errors.New("wallet: amount must be positive")
)

// Ledger applies settlement money movement: the stake is debited before a
// round runs and the payout credited after it resolves. The settlement
// module itself never touches balances; callers own the ordering.
type Ledger interface {
	// Debit removes amount (paise) from the player's balance.
	Debit(player string, amount int64) error
	// Credit adds amount (paise) to the player's balance.
	Credit(player string, amount int64) error
	// Balance returns the player's current balance in paise.
	Balance(player string) int64
}
