package domain

import "time"

type RefundStatus string

const (
	RefundInitialized      RefundStatus = "initialized"
	RefundViewed           RefundStatus = "viewed"
	RefundReceiverVerified RefundStatus = "receiverVerified"
	RefundPending          RefundStatus = "pending"
	RefundProcessed        RefundStatus = "processed"
	RefundCanceled         RefundStatus = "canceled"
	RefundByVendor         RefundStatus = "refundByVendor"
	RefundFailed           RefundStatus = "failed"
)

// Terminal reports whether the reconciliation engine applies no further
// automatic transition once this status is reached.
func (s RefundStatus) Terminal() bool {
	return s == RefundProcessed || s == RefundFailed || s == RefundCanceled
}

// Transaction mirrors the processor-side disbursement attached to a refund.
type Transaction struct {
	TransactionID string
	Processor     string
	Status        string
	ErrorCode     string
	Info          string
}

type Refund struct {
	ID                string
	VendorID          string
	AmountCents       int64
	Status            RefundStatus
	Transaction       Transaction
	ExpirationDate    time.Time
	Expired           bool
	RefundDepositedAt *time.Time
	RefundDate        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
