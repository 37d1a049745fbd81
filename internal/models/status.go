package models

// Ride and request status values. Anything else is rejected.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Payment status values driven by the payment gateway.
const (
	PaymentPending = "PENDING_PAYMENT"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

var validStatuses = map[string]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func IsValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}
