package application

import (
	"context"
	"sync"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
)

// Fakes mimic the persistence guarantees the postgres stores provide: the
// refund fake enforces the transition guard under a mutex, the share fake
// enforces one share per refund.

type fakeRefunds struct {
	mu      sync.Mutex
	refund  *domain.Refund
	finds   int
	outbox  []string
	applied int
	err     error
}

func (f *fakeRefunds) FindByTransaction(ctx context.Context, transactionID, processor string) (*domain.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.err != nil {
		return nil, f.err
	}
	if f.refund != nil && f.refund.Transaction.TransactionID == transactionID && f.refund.Transaction.Processor == processor {
		cp := *f.refund
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRefunds) ApplyChangeWithOutbox(ctx context.Context, refundID string, c domain.RefundChange, eventType string, payload []byte, destination string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if !c.Transition {
		f.refund.Transaction = c.Transaction
		f.refund.UpdatedAt = c.At
		return false, nil
	}
	if c.To == domain.RefundProcessed && f.refund.Status == domain.RefundProcessed {
		return false, nil
	}
	if c.To == domain.RefundFailed && f.refund.Status.Terminal() {
		return false, nil
	}
	f.refund.Status = c.To
	f.refund.Transaction = c.Transaction
	f.refund.UpdatedAt = c.At
	if c.StampDeposit && f.refund.RefundDepositedAt == nil {
		at := c.At
		f.refund.RefundDepositedAt = &at
		f.refund.RefundDate = &at
	}
	f.outbox = append(f.outbox, eventType)
	f.applied++
	return true, nil
}

type fakePayouts struct {
	payout *domain.Payout
	finds  int
}

func (f *fakePayouts) FindByTransaction(ctx context.Context, transactionID string) (*domain.Payout, error) {
	f.finds++
	if f.payout != nil && f.payout.TransactionID == transactionID {
		cp := *f.payout
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePayouts) UpdateStatus(ctx context.Context, id, status string) error {
	f.payout.Status = status
	return nil
}

type fakeInvoices struct {
	invoice *domain.Invoice
	finds   int
}

func (f *fakeInvoices) FindByCharge(ctx context.Context, chargeID, processor string) (*domain.Invoice, error) {
	f.finds++
	if f.invoice != nil && f.invoice.ChargeID == chargeID && f.invoice.ChargeProcessor == processor {
		cp := *f.invoice
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeInvoices) ApplyChange(ctx context.Context, id string, c domain.InvoiceChange) error {
	f.invoice.ChargeStatus = c.ChargeStatus
	f.invoice.ChargeInfo = c.ChargeInfo
	f.invoice.Status = c.Status
	return nil
}

type fakeCustomers struct {
	customer *domain.Customer
	finds    int
}

func (f *fakeCustomers) FindByAptpayID(ctx context.Context, aptpayID string) (*domain.Customer, error) {
	f.finds++
	if f.customer != nil && f.customer.AptpayID == aptpayID {
		cp := *f.customer
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCustomers) UpdateAptpayState(ctx context.Context, id, status, errorCode string) error {
	f.customer.AptpayStatus = status
	f.customer.AptpayErrorCode = errorCode
	return nil
}

type fakeShares struct {
	mu          sync.Mutex
	byRefund    map[string]int
	invoicePaid map[string]int
	err         error
}

func newFakeShares() *fakeShares {
	return &fakeShares{byRefund: map[string]int{}, invoicePaid: map[string]int{}}
}

func (f *fakeShares) BookForRefund(ctx context.Context, refund domain.Refund) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.byRefund[refund.ID] == 0 {
		f.byRefund[refund.ID] = 1
	}
	return nil
}

func (f *fakeShares) MarkInvoicePaid(ctx context.Context, invoiceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invoicePaid[invoiceID]++
	return nil
}
