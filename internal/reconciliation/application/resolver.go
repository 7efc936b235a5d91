package application

import (
	"context"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
)

type MatchKind int

const (
	NoMatch MatchKind = iota
	RefundMatch
	PayoutMatch
	InvoiceMatch
	CustomerMatch
)

// Match is the tagged result of entity resolution; exactly the field named by
// Kind is set.
type Match struct {
	Kind     MatchKind
	Refund   *domain.Refund
	Payout   *domain.Payout
	Invoice  *domain.Invoice
	Customer *domain.Customer
}

type Resolver struct {
	refunds   RefundRepository
	payouts   PayoutRepository
	invoices  InvoiceRepository
	customers CustomerRepository
}

func NewResolver(refunds RefundRepository, payouts PayoutRepository, invoices InvoiceRepository, customers CustomerRepository) *Resolver {
	return &Resolver{refunds: refunds, payouts: payouts, invoices: invoices, customers: customers}
}

// Resolve finds the single internal record an event concerns. Payee events
// resolve directly by the processor-side payee id. Disbursement events search
// refunds, then payouts, then invoices; the first match short-circuits the
// rest. No match is a valid outcome, not an error.
func (r *Resolver) Resolve(ctx context.Context, ev domain.ProcessorEvent) (Match, error) {
	if ev.Entity == domain.EntityPayee {
		c, err := r.customers.FindByAptpayID(ctx, ev.ID)
		if err != nil {
			return Match{}, err
		}
		if c != nil {
			return Match{Kind: CustomerMatch, Customer: c}, nil
		}
		return Match{}, nil
	}

	refund, err := r.refunds.FindByTransaction(ctx, ev.ID, ev.Processor)
	if err != nil {
		return Match{}, err
	}
	if refund != nil {
		return Match{Kind: RefundMatch, Refund: refund}, nil
	}

	payout, err := r.payouts.FindByTransaction(ctx, ev.ID)
	if err != nil {
		return Match{}, err
	}
	if payout != nil {
		return Match{Kind: PayoutMatch, Payout: payout}, nil
	}

	invoice, err := r.invoices.FindByCharge(ctx, ev.ID, ev.Processor)
	if err != nil {
		return Match{}, err
	}
	if invoice != nil {
		return Match{Kind: InvoiceMatch, Invoice: invoice}, nil
	}

	return Match{}, nil
}
