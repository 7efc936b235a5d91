package domain

import (
	"strings"
	"time"
)

// Transaction sub-record statuses written by the mapper.
const (
	TxCreated = "created"
	TxPaid    = "paid"
	TxError   = "error"
)

// RefundChange is the computed outcome of applying a processor event to a
// refund snapshot. Nothing is persisted here; the repository enforces the
// From → To move as a conditional update so racing deliveries cannot both
// win the transition.
type RefundChange struct {
	From         RefundStatus
	To           RefundStatus
	Transition   bool
	StampDeposit bool
	Transaction  Transaction
	At           time.Time
}

// MapRefund encodes the webhook-driven subset of the refund state machine:
//
//	OK                  -> transaction acknowledged, aggregate untouched
//	SETTLED | APPROVED  -> processed, unless already processed
//	*ERROR*             -> failed, unless already terminal
//	anything else       -> raw mirror into the transaction sub-record only
func MapRefund(r Refund, ev ProcessorEvent, now time.Time) RefundChange {
	tx := r.Transaction
	tx.Status = ev.Status
	tx.ErrorCode = ev.ErrorCode
	tx.Info = ev.Info

	c := RefundChange{From: r.Status, To: r.Status, Transaction: tx, At: now}

	switch {
	case ev.Status == StatusOK:
		c.Transaction.Status = TxCreated
	case ev.Status == StatusSettled || ev.Status == StatusApproved:
		c.Transaction.Status = TxPaid
		if r.Status != RefundProcessed {
			c.To = RefundProcessed
			c.Transition = true
			c.StampDeposit = true
		}
	case strings.Contains(ev.Status, "ERROR"):
		c.Transaction.Status = TxError
		c.Transaction.ErrorCode = ErrorMessage(ev.ErrorCode)
		if !r.Status.Terminal() {
			c.To = RefundFailed
			c.Transition = true
		}
	}
	return c
}

// InvoiceChange mirrors the processor's raw status on every event and moves
// the invoice status only on settlement or error.
type InvoiceChange struct {
	Status       InvoiceStatus
	MarkPaid     bool
	ChargeStatus string
	ChargeInfo   string
}

func MapInvoice(inv Invoice, ev ProcessorEvent) InvoiceChange {
	c := InvoiceChange{
		Status:       inv.Status,
		ChargeStatus: ev.Status,
		ChargeInfo:   strings.TrimSpace(ev.ErrorCode + " " + ev.Info),
	}
	switch {
	case ev.Status == StatusSettled || ev.Status == StatusApproved:
		c.Status = InvoicePaid
		c.MarkPaid = true
	case strings.Contains(ev.Status, "ERROR"):
		c.Status = InvoiceUnpaid
	}
	return c
}
