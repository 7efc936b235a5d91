package domain

import "time"

// Payout is a pass-through ledger entry: its status mirrors whatever the
// processor last reported, with no state machine of its own.
type Payout struct {
	ID            string
	VendorID      string
	TransactionID string
	AmountCents   int64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
