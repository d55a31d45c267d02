package paymentsession

import (
	"errors"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
)

// ErrSessionNotFound covers every caller-facing "no such session" outcome,
// including processor failures on the fallback path: the caller cannot tell
// an unknown session from a Stripe hiccup, and 404 is the safer answer.
var ErrSessionNotFound = errors.New("payment session not found")

type RecordType string

const (
	RecordTypeBooking  RecordType = "booking"
	RecordTypeBootcamp RecordType = "bootcamp"
)

// Resolved is the tagged union produced by the resolver. Exactly one of
// Booking/Registration is set, matching Type. Every consumer switches on
// Type exhaustively instead of probing optional fields.
type Resolved struct {
	Type         RecordType
	Booking      *bookings.Booking
	Registration *bootcamps.Registration
}
