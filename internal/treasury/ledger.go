package treasury

import (
	"context"
	"sync"
)

// Ledger is an in-memory Treasury that tracks per-address movement and
// running totals. It backs the default deployment and lets tests assert
// the accounting invariant: total out never exceeds total in.
type Ledger struct {
	mu       sync.Mutex
	totalIn  int64
	totalOut int64
	paid     map[string]int64
	funded   map[string]int64

	// RejectPayout, when set, vetoes payouts to specific recipients.
	// Simulates a recipient refusing funds.
	RejectPayout func(to string) bool
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		paid:   make(map[string]int64),
		funded: make(map[string]int64),
	}
}

func (l *Ledger) Deposit(ctx context.Context, from string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalIn += amount
	l.funded[from] += amount
	return nil
}

func (l *Ledger) Payout(ctx context.Context, to string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.RejectPayout != nil && l.RejectPayout(to) {
		return ErrTransferRejected
	}
	l.totalOut += amount
	l.paid[to] += amount
	return nil
}

// TotalIn returns the sum of all deposits.
func (l *Ledger) TotalIn() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalIn
}

// TotalOut returns the sum of all successful payouts.
func (l *Ledger) TotalOut() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalOut
}

// PaidTo returns the total paid out to addr.
func (l *Ledger) PaidTo(addr string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paid[addr]
}

// FundedBy returns the total deposited by addr.
func (l *Ledger) FundedBy(addr string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.funded[addr]
}
