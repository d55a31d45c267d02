package paymentsession

import (
	"testing"
	"time"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/drafts"

	"github.com/stripe/stripe-go/v75"
)

func TestEvaluate_TooOld(t *testing.T) {
	t.Run("paid booking past the reuse window is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			ID:        "bk-1",
			Status:    bookings.StatusPaid,
			PaidAt:    ago(2 * time.Hour),
			CreatedAt: testNow.Add(-3 * time.Hour),
		}}

		g := svc.Evaluate(res)
		if !g.TooOld {
			t.Errorf("expected TooOld for paidAt 2h ago with a 1h window")
		}
	})

	t.Run("paid booking inside the window passes", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status: bookings.StatusPaid,
			PaidAt: ago(30 * time.Minute),
		}}

		if g := svc.Evaluate(res); g.TooOld {
			t.Errorf("30 minutes is inside the 1h reuse window")
		}
	})

	t.Run("anchor priority is paidAt then confirmedAt then createdAt", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		// confirmedAt stale, paidAt fresh: paidAt wins.
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:      bookings.StatusConfirmed,
			PaidAt:      ago(10 * time.Minute),
			ConfirmedAt: ago(5 * time.Hour),
		}}
		if g := svc.Evaluate(res); g.TooOld {
			t.Errorf("paidAt must take priority over confirmedAt")
		}

		// no paidAt: confirmedAt anchors.
		res = &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:      bookings.StatusConfirmed,
			ConfirmedAt: ago(90 * time.Minute),
			CreatedAt:   testNow.Add(-10 * time.Minute),
		}}
		if g := svc.Evaluate(res); !g.TooOld {
			t.Errorf("confirmedAt must anchor when paidAt is absent")
		}

		// neither: createdAt anchors.
		res = &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:    bookings.StatusPaid,
			CreatedAt: testNow.Add(-2 * time.Hour),
		}}
		if g := svc.Evaluate(res); !g.TooOld {
			t.Errorf("createdAt must anchor when both timestamps are absent")
		}
	})

	t.Run("pending record is never too old", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:    bookings.StatusPending,
			CreatedAt: testNow.Add(-48 * time.Hour),
		}}

		if g := svc.Evaluate(res); g.TooOld {
			t.Errorf("TooOld only applies to paid/confirmed records")
		}
	})

	t.Run("too old applies regardless of other predicates", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:             bookings.StatusPaid,
			PaidAt:             ago(2 * time.Hour),
			CalendlyInviteeURI: "https://calendly.com/invitees/abc",
			ExpiresAt:          ago(3 * time.Hour),
		}}

		g := svc.Evaluate(res)
		if !g.TooOld {
			t.Errorf("TooOld must hold independently of AlreadyUsed/Expired")
		}
	})
}

func TestEvaluate_AlreadyUsed(t *testing.T) {
	t.Run("booking with invitee URI is already used", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:             bookings.StatusPaid,
			PaidAt:             ago(10 * time.Minute),
			CalendlyInviteeURI: "https://calendly.com/invitees/abc",
		}}

		g := svc.Evaluate(res)
		if !g.AlreadyUsed {
			t.Errorf("a recorded invitee URI means scheduling already happened")
		}
		if g.TooOld {
			t.Errorf("record is inside the window; predicates are independent")
		}
	})

	t.Run("booking with event URI is already used", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:           bookings.StatusPaid,
			PaidAt:           ago(10 * time.Minute),
			CalendlyEventURI: "https://calendly.com/events/xyz",
		}}

		if g := svc.Evaluate(res); !g.AlreadyUsed {
			t.Errorf("a recorded event URI means scheduling already happened")
		}
	})

	t.Run("registrations have no scheduling side effect", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBootcamp, Registration: &bootcamps.Registration{
			Status: bookings.StatusPaid,
			PaidAt: ago(10 * time.Minute),
		}}

		if g := svc.Evaluate(res); g.AlreadyUsed {
			t.Errorf("AlreadyUsed is a booking-only predicate")
		}
	})
}

func TestEvaluate_Expired(t *testing.T) {
	t.Run("pending record past expiresAt is flagged, not rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBootcamp, Registration: &bootcamps.Registration{
			Status:    bookings.StatusPending,
			ExpiresAt: ago(24 * time.Hour),
		}}

		g := svc.Evaluate(res)
		if !g.Expired {
			t.Errorf("expected Expired flag")
		}
		if g.TooOld || g.AlreadyUsed {
			t.Errorf("expired pending record must not trip the security predicates")
		}
	})

	t.Run("paid record past expiresAt is not expired", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		res := &Resolved{Type: RecordTypeBooking, Booking: &bookings.Booking{
			Status:    bookings.StatusPaid,
			PaidAt:    ago(10 * time.Minute),
			ExpiresAt: ago(1 * time.Hour),
		}}

		if g := svc.Evaluate(res); g.Expired {
			t.Errorf("expired only applies to records that never reached PAID")
		}
	})
}

// Keeps the handler's short-circuit order honest: rejection happens before
// form data is assembled, so a rejected session must not consume the draft.
func TestGateOrdering_DraftSurvivesRejection(t *testing.T) {
	svc, bs, _, ds, _ := newTestService()
	sid := "cs_test_gone"
	bs.records = append(bs.records, &bookings.Booking{
		ID:              "bk-gone",
		StripeSessionID: stripe.String(sid),
		Status:          bookings.StatusPaid,
		PaidAt:          ago(2 * time.Hour),
	})
	ds.byID[sid] = &drafts.BookingDraft{StripeSessionID: sid, FullName: "Amal K"}

	res, err := svc.Resolve(sid)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if g := svc.Evaluate(res); !g.TooOld {
		t.Fatalf("expected TooOld")
	}
	if ds.deletes != 0 || ds.byID[sid] == nil {
		t.Errorf("gate evaluation must not consume the draft")
	}
}
