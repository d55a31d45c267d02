package paymentsession

import (
	"time"

	"navigator-backend/internal/domain/bookings"
)

// GateResult carries the three validity predicates, computed independently.
// TooOld and AlreadyUsed are hard rejections (410 / 409) evaluated before
// any response body exists; Expired is informational and rides along in a
// normal 200 so the caller can show the lapsed window.
type GateResult struct {
	TooOld      bool
	AlreadyUsed bool
	Expired     bool
}

// Evaluate runs the security gate over a resolved record.
func (s *Service) Evaluate(res *Resolved) GateResult {
	now := s.now()
	var g GateResult

	switch res.Type {
	case RecordTypeBooking:
		b := res.Booking
		g.TooOld = s.tooOld(b.Status, b.PaidAt, b.ConfirmedAt, b.CreatedAt, now)
		g.AlreadyUsed = b.CalendlyEventURI != "" || b.CalendlyInviteeURI != ""
		g.Expired = neverPaid(b.Status) && b.ExpiresAt != nil && b.ExpiresAt.Before(now)

	case RecordTypeBootcamp:
		r := res.Registration
		g.TooOld = s.tooOld(r.Status, r.PaidAt, r.ConfirmedAt, r.CreatedAt, now)
		g.Expired = neverPaid(r.Status) && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
	}

	return g
}

// tooOld rejects a paid/confirmed session once the reuse window has elapsed
// since its confirmation anchor: paidAt, else confirmedAt, else createdAt.
// A leaked session id stops resolving to payment details after the window.
func (s *Service) tooOld(status string, paidAt, confirmedAt *time.Time, createdAt, now time.Time) bool {
	if status != bookings.StatusPaid && status != bookings.StatusConfirmed {
		return false
	}
	anchor := createdAt
	if paidAt != nil {
		anchor = *paidAt
	} else if confirmedAt != nil {
		anchor = *confirmedAt
	}
	return now.Sub(anchor) > s.reuseWindow
}

func neverPaid(status string) bool {
	return status != bookings.StatusPaid && status != bookings.StatusConfirmed
}
