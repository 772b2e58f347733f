package wallet

import "sync"

// MemoryLedger is a mutex-guarded in-process ledger. Suitable for a single
// instance; a clustered deployment would back this interface with the
// platform's account store instead.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[string]int64)}
}

func (l *MemoryLedger) Debit(player string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[player] < amount {
		return ErrInsufficientFunds
	}
	l.balances[player] -= amount
	return nil
}

func (l *MemoryLedger) Credit(player string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[player] += amount
	return nil
}

func (l *MemoryLedger) Balance(player string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[player]
}
