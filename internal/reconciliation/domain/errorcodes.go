package domain

// errorMessages translates processor error codes into the human-readable
// messages we persist on the refund transaction audit field. The table is
// static vendor documentation; codes we do not recognize translate to "".
var errorMessages = map[string]string{
	"A001": "Account not found",
	"A002": "Account closed",
	"A003": "Account frozen",
	"D001": "Duplicate transaction",
	"D002": "Disbursement rejected by receiving institution",
	"L001": "Amount above transaction limit",
	"L002": "Amount below transaction limit",
	"M001": "Invalid routing information",
	"M002": "Invalid account information",
	"M003": "Receiver verification failed",
	"M004": "System error",
	"M005": "Transaction expired",
	"N001": "Network unavailable",
	"R001": "Returned by receiver",
}

// ErrorMessage looks up the audit message for a processor error code.
// Unknown codes map to the empty string, never an error.
func ErrorMessage(code string) string {
	return errorMessages[code]
}
