package domain

import "errors"

type EntityKind string

const (
	EntityPayee        EntityKind = "payee"
	EntityDisbursement EntityKind = "disbursement"
)

// Processor status values the refund and invoice state machines react to.
// Everything else is mirrored into the raw fields untouched.
const (
	StatusOK       = "OK"
	StatusSettled  = "SETTLED"
	StatusApproved = "APPROVED"
)

const ProcessorAptpay = "aptpay"

var (
	ErrMissingID     = errors.New("event id missing")
	ErrMissingStatus = errors.New("event status missing")
	ErrBadEntity     = errors.New("unknown event entity")
)

// ProcessorEvent is a single lifecycle notification as delivered by the
// payment processor, after the transport layer has authenticated it.
type ProcessorEvent struct {
	Entity    EntityKind
	ID        string
	Processor string
	Status    string
	ErrorCode string
	Info      string
}

// Validate rejects payloads that redelivery cannot fix.
func (e ProcessorEvent) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Status == "" {
		return ErrMissingStatus
	}
	if e.Entity != EntityPayee && e.Entity != EntityDisbursement {
		return ErrBadEntity
	}
	return nil
}
