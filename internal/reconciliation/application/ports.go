package application

import (
	"context"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
)

// Finders return (nil, nil) when no record matches; only store failures
// surface as errors.

type RefundRepository interface {
	FindByTransaction(ctx context.Context, transactionID, processor string) (*domain.Refund, error)
	// ApplyChangeWithOutbox persists the change. When the change carries an
	// aggregate transition, the status move is applied conditionally on the
	// prior status and the notification row is written to the outbox in the
	// same transaction; the returned bool reports whether this caller won the
	// transition. Mirror-only changes always persist and return false.
	ApplyChangeWithOutbox(ctx context.Context, refundID string, c domain.RefundChange, eventType string, payload []byte, destination string) (bool, error)
}

type PayoutRepository interface {
	FindByTransaction(ctx context.Context, transactionID string) (*domain.Payout, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type InvoiceRepository interface {
	FindByCharge(ctx context.Context, chargeID, processor string) (*domain.Invoice, error)
	ApplyChange(ctx context.Context, id string, c domain.InvoiceChange) error
}

type CustomerRepository interface {
	FindByAptpayID(ctx context.Context, aptpayID string) (*domain.Customer, error)
	UpdateAptpayState(ctx context.Context, id, status, errorCode string) error
}

type RevenueShareRepository interface {
	// BookForRefund creates the vendor's share for a processed refund; at most
	// one share ever exists per refund.
	BookForRefund(ctx context.Context, refund domain.Refund) error
	// MarkInvoicePaid flags every share linked to the invoice as payable.
	// Re-marking is a no-op.
	MarkInvoicePaid(ctx context.Context, invoiceID string) error
}
