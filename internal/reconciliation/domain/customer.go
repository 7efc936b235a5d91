package domain

import "time"

// Customer carries the processor-side payee mirror fields. Payee events
// overwrite them verbatim; there is no state machine here.
type Customer struct {
	ID              string
	AptpayID        string
	AptpayStatus    string
	AptpayErrorCode string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
