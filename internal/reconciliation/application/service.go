package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
)

// Service coordinates reconciliation: resolve the entity, compute the
// transition, persist it under the atomic guard, then fan out side effects
// for the caller that actually performed the transition.
type Service struct {
	log       *slog.Logger
	resolver  *Resolver
	refunds   RefundRepository
	payouts   PayoutRepository
	invoices  InvoiceRepository
	customers CustomerRepository
	shares    RevenueShareRepository
	now       func() time.Time
}

func NewService(log *slog.Logger, refunds RefundRepository, payouts PayoutRepository, invoices InvoiceRepository, customers CustomerRepository, shares RevenueShareRepository) *Service {
	return &Service{
		log:       log,
		resolver:  NewResolver(refunds, payouts, invoices, customers),
		refunds:   refunds,
		payouts:   payouts,
		invoices:  invoices,
		customers: customers,
		shares:    shares,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle reconciles one processor event. Events that match nothing we track
// are handled successfully: the processor retries on failure, and retrying an
// event we will never have a record for only wastes resources. Only store
// failures propagate.
func (s *Service) Handle(ctx context.Context, ev domain.ProcessorEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	m, err := s.resolver.Resolve(ctx, ev)
	if err != nil {
		return err
	}

	switch m.Kind {
	case CustomerMatch:
		return s.customers.UpdateAptpayState(ctx, m.Customer.ID, ev.Status, ev.ErrorCode)
	case PayoutMatch:
		return s.payouts.UpdateStatus(ctx, m.Payout.ID, ev.Status)
	case InvoiceMatch:
		return s.handleInvoice(ctx, *m.Invoice, ev)
	case RefundMatch:
		return s.handleRefund(ctx, *m.Refund, ev)
	default:
		s.log.Info("event matches no tracked record", "entity", ev.Entity, "id", ev.ID, "status", ev.Status)
		return nil
	}
}

func (s *Service) handleRefund(ctx context.Context, r domain.Refund, ev domain.ProcessorEvent) error {
	change := domain.MapRefund(r, ev, s.now())

	var eventType string
	var payload []byte
	var destination string
	if change.Transition {
		note := domain.RefundStatusChanged{
			RefundID:      r.ID,
			VendorID:      r.VendorID,
			Status:        change.To,
			TransactionID: change.Transaction.TransactionID,
			Processor:     change.Transaction.Processor,
			ErrorCode:     change.Transaction.ErrorCode,
			OccurredAt:    change.At,
		}
		eventType = eventTypeFor(change.To)
		var err error
		payload, err = json.Marshal(note)
		if err != nil {
			return err
		}
		destination = VendorTopic(r.VendorID)
	}

	applied, err := s.refunds.ApplyChangeWithOutbox(ctx, r.ID, change, eventType, payload, destination)
	if err != nil {
		return err
	}
	if change.Transition && !applied {
		s.log.Info("transition already applied elsewhere", "refund_id", r.ID, "to", change.To)
		return nil
	}
	if applied && change.To == domain.RefundProcessed {
		if err := s.shares.BookForRefund(ctx, r); err != nil {
			// Booking failures never unwind a confirmed reconciliation.
			s.log.Error("revenue share booking failed", "refund_id", r.ID, "err", err)
		}
	}
	return nil
}

func (s *Service) handleInvoice(ctx context.Context, inv domain.Invoice, ev domain.ProcessorEvent) error {
	change := domain.MapInvoice(inv, ev)
	if err := s.invoices.ApplyChange(ctx, inv.ID, change); err != nil {
		return err
	}
	if change.MarkPaid {
		if err := s.shares.MarkInvoicePaid(ctx, inv.ID); err != nil {
			s.log.Error("marking invoice shares payable failed", "invoice_id", inv.ID, "err", err)
		}
	}
	return nil
}

func eventTypeFor(status domain.RefundStatus) string {
	if status == domain.RefundProcessed {
		return "RefundProcessed"
	}
	return "RefundFailed"
}

// VendorTopic names the vendor-scoped queue notification jobs are addressed to.
func VendorTopic(vendorID string) string {
	return "vendor." + vendorID + ".webhooks"
}
