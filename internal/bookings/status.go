package bookings

// Status is the lifecycle state of a booking. There are only two: a
// booking is confirmed the moment payment succeeds, and cancellation is
// the only transition out.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanBeCancelled reports whether the status permits cancellation
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}

// PaymentMethod identifies the simulated payment channel picked at
// checkout
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentEsewa  PaymentMethod = "esewa"
	PaymentKhalti PaymentMethod = "khalti"
	PaymentCash   PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentEsewa, PaymentKhalti, PaymentCash:
		return true
	}
	return false
}
