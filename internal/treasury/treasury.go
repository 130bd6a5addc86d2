package treasury

import (
	"context"
	"errors"
)

// ErrTransferRejected is returned when the external recipient refuses a
// payout. Callers must treat it as fatal for the whole operation.
var ErrTransferRejected = errors.New("transfer rejected")

// Treasury is the custody boundary for item funding pools. Deposit pulls
// value in from a funder; Payout pushes value out to a recipient (cancel
// refunds and reward claims). Implementations may talk to an external
// payment rail; the services treat any Payout error as a full rollback.
type Treasury interface {
	Deposit(ctx context.Context, from string, amount int64) error
	Payout(ctx context.Context, to string, amount int64) error
}
