package treasury

import (
	"context"
	"errors"
	"testing"
)

func TestLedger_TracksDepositsAndPayouts(t *testing.T) {
	l := NewLedger()
	ctx := context.Background()

	if err := l.Deposit(ctx, "alice", 100); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := l.Deposit(ctx, "bob", 50); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := l.Payout(ctx, "carol", 70); err != nil {
		t.Fatalf("Payout: %v", err)
	}

	if got := l.TotalIn(); got != 150 {
		t.Errorf("expected TotalIn=150, got %d", got)
	}
	if got := l.TotalOut(); got != 70 {
		t.Errorf("expected TotalOut=70, got %d", got)
	}
	if got := l.FundedBy("alice"); got != 100 {
		t.Errorf("expected FundedBy(alice)=100, got %d", got)
	}
	if got := l.PaidTo("carol"); got != 70 {
		t.Errorf("expected PaidTo(carol)=70, got %d", got)
	}
}

func TestLedger_RejectPayout(t *testing.T) {
	l := NewLedger()
	l.RejectPayout = func(to string) bool { return to == "mallory" }
	ctx := context.Background()

	err := l.Payout(ctx, "mallory", 10)
	if !errors.Is(err, ErrTransferRejected) {
		t.Fatalf("expected ErrTransferRejected, got %v", err)
	}
	if got := l.TotalOut(); got != 0 {
		t.Errorf("rejected payout must not count, TotalOut=%d", got)
	}

	if err := l.Payout(ctx, "alice", 10); err != nil {
		t.Fatalf("Payout to alice: %v", err)
	}
	if got := l.PaidTo("alice"); got != 10 {
		t.Errorf("expected PaidTo(alice)=10, got %d", got)
	}
}
