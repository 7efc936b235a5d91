package domain

import "time"

type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

type Invoice struct {
	ID              string
	VendorID        string
	ChargeID        string
	ChargeProcessor string
	ChargeStatus    string
	ChargeInfo      string
	Status          InvoiceStatus
	AmountCents     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
