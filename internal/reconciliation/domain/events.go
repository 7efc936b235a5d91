package domain

import "time"

// RefundStatusChanged is the notification payload queued toward a vendor's
// outbound webhook queue when a refund reaches a reconciled terminal state.
type RefundStatusChanged struct {
	RefundID      string       `json:"refund_id"`
	VendorID      string       `json:"vendor_id"`
	Status        RefundStatus `json:"status"`
	TransactionID string       `json:"transaction_id"`
	Processor     string       `json:"processor"`
	ErrorCode     string       `json:"error_code,omitempty"`
	OccurredAt    time.Time    `json:"occurred_at"`
}
