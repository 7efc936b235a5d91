package application

import (
	"context"
	"testing"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
)

func disbursement(id string) domain.ProcessorEvent {
	return domain.ProcessorEvent{
		Entity:    domain.EntityDisbursement,
		ID:        id,
		Processor: domain.ProcessorAptpay,
		Status:    "SETTLED",
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	// All three records share the same external identifier; the refund must
	// win and the later lookups must be skipped.
	d := newDeps()
	d.refunds.refund = &domain.Refund{ID: "rf-1", Transaction: domain.Transaction{TransactionID: "X", Processor: domain.ProcessorAptpay}}
	d.payouts.payout = &domain.Payout{ID: "po-1", TransactionID: "X"}
	d.invoices.invoice = &domain.Invoice{ID: "inv-1", ChargeID: "X", ChargeProcessor: domain.ProcessorAptpay}
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	m, err := r.Resolve(context.Background(), disbursement("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != RefundMatch || m.Refund.ID != "rf-1" {
		t.Errorf("match = %+v, want refund rf-1", m)
	}
	if d.payouts.finds != 0 || d.invoices.finds != 0 {
		t.Errorf("lookups not short-circuited: payouts=%d invoices=%d", d.payouts.finds, d.invoices.finds)
	}
}

func TestResolvePayoutBeforeInvoice(t *testing.T) {
	d := newDeps()
	d.payouts.payout = &domain.Payout{ID: "po-1", TransactionID: "X"}
	d.invoices.invoice = &domain.Invoice{ID: "inv-1", ChargeID: "X", ChargeProcessor: domain.ProcessorAptpay}
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	m, err := r.Resolve(context.Background(), disbursement("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != PayoutMatch || m.Payout.ID != "po-1" {
		t.Errorf("match = %+v, want payout po-1", m)
	}
	if d.invoices.finds != 0 {
		t.Error("invoice lookup not short-circuited")
	}
}

func TestResolveInvoiceFallback(t *testing.T) {
	d := newDeps()
	d.invoices.invoice = &domain.Invoice{ID: "inv-1", ChargeID: "X", ChargeProcessor: domain.ProcessorAptpay}
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	m, err := r.Resolve(context.Background(), disbursement("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != InvoiceMatch || m.Invoice.ID != "inv-1" {
		t.Errorf("match = %+v, want invoice inv-1", m)
	}
}

func TestResolveRefundRequiresMatchingProcessor(t *testing.T) {
	d := newDeps()
	d.refunds.refund = &domain.Refund{ID: "rf-1", Transaction: domain.Transaction{TransactionID: "X", Processor: "stripe"}}
	d.payouts.payout = &domain.Payout{ID: "po-1", TransactionID: "X"}
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	m, err := r.Resolve(context.Background(), disbursement("X"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != PayoutMatch {
		t.Errorf("match = %+v, want payout when processors differ", m)
	}
}

func TestResolvePayee(t *testing.T) {
	d := newDeps()
	d.customers.customer = &domain.Customer{ID: "cu-1", AptpayID: "AP-1"}
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	ev := domain.ProcessorEvent{Entity: domain.EntityPayee, ID: "AP-1", Status: "VERIFIED"}
	m, err := r.Resolve(context.Background(), ev)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != CustomerMatch || m.Customer.ID != "cu-1" {
		t.Errorf("match = %+v, want customer cu-1", m)
	}
	if d.refunds.finds != 0 {
		t.Error("payee events must not search disbursement records")
	}
}

func TestResolveNoMatch(t *testing.T) {
	d := newDeps()
	r := NewResolver(d.refunds, d.payouts, d.invoices, d.customers)

	m, err := r.Resolve(context.Background(), disbursement("UNKNOWN"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Kind != NoMatch {
		t.Errorf("match = %+v, want NoMatch", m)
	}
}
