package paymentsession

import (
	"navigator-backend/internal/domain/bookings"

	log "github.com/sirupsen/logrus"
)

// Sweep transitions a still-pending, time-expired record to EXPIRED and
// persists the change. At most one write happens per transition; records
// that already progressed past PENDING are left to the security gate's
// reuse-window rule instead.
func (s *Service) Sweep(res *Resolved) {
	switch res.Type {
	case RecordTypeBooking:
		b := res.Booking
		if b.Status != bookings.StatusPending || b.ExpiresAt == nil || !b.ExpiresAt.Before(s.now()) {
			return
		}
		if err := s.bookings.UpdateFields(b.ID, map[string]interface{}{
			"status":         bookings.StatusExpired,
			"payment_status": bookings.StatusExpired,
		}); err != nil {
			log.WithField("booking_id", b.ID).WithError(err).Error("Failed to expire pending booking")
			return
		}
		b.Status = bookings.StatusExpired
		b.PaymentStatus = bookings.StatusExpired

	case RecordTypeBootcamp:
		r := res.Registration
		if r.Status != bookings.StatusPending || r.ExpiresAt == nil || !r.ExpiresAt.Before(s.now()) {
			return
		}
		if err := s.registrations.UpdateFields(r.ID, map[string]interface{}{
			"status":         bookings.StatusExpired,
			"payment_status": bookings.StatusExpired,
		}); err != nil {
			log.WithField("registration_id", r.ID).WithError(err).Error("Failed to expire pending registration")
			return
		}
		r.Status = bookings.StatusExpired
		r.PaymentStatus = bookings.StatusExpired
	}
}
