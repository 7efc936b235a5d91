package domain

import "time"

// RevenueShare attributes a vendor-configured portion of a refund or invoice
// amount to the vendor's account. At most one share exists per refund;
// invoice-linked shares flip HasPaidInvoice once the invoice settles.
type RevenueShare struct {
	ID             string
	VendorID       string
	RefundID       string
	InvoiceID      string
	AmountCents    int64
	HasPaidInvoice bool
	CreatedAt      time.Time
}
