package paymentsession

import (
	"testing"
	"time"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"

	"github.com/stripe/stripe-go/v75"
)

func TestSweep(t *testing.T) {
	t.Run("pending registration past expiresAt transitions to EXPIRED", func(t *testing.T) {
		svc, _, rs, _, _ := newTestService()
		rs.records = append(rs.records, &bootcamps.Registration{
			ID:              "reg-1",
			StripeSessionID: stripe.String("cs_test_exp"),
			Status:          bookings.StatusPending,
			PaymentStatus:   "unpaid",
			ExpiresAt:       ago(24 * time.Hour),
		})

		res, err := svc.Resolve("cs_test_exp")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		svc.Sweep(res)

		if res.Registration.Status != bookings.StatusExpired {
			t.Errorf("in-memory record not updated: %q", res.Registration.Status)
		}
		if res.Registration.PaymentStatus != bookings.StatusExpired {
			t.Errorf("payment status mirror not updated: %q", res.Registration.PaymentStatus)
		}
		// The store reflects the same state on a subsequent direct read.
		persisted, _ := rs.FindBySession("cs_test_exp")
		if persisted.Status != bookings.StatusExpired {
			t.Errorf("persisted record not updated: %q", persisted.Status)
		}
		if rs.updateCalls != 1 {
			t.Errorf("expected exactly one write, got %d", rs.updateCalls)
		}
	})

	t.Run("pending booking past expiresAt transitions to EXPIRED", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		bs.records = append(bs.records, &bookings.Booking{
			ID:        "bk-1",
			Status:    bookings.StatusPending,
			ExpiresAt: ago(time.Minute),
		})

		res := &Resolved{Type: RecordTypeBooking, Booking: mustFindBooking(t, bs, "bk-1")}
		svc.Sweep(res)

		if res.Booking.Status != bookings.StatusExpired {
			t.Errorf("booking not expired: %q", res.Booking.Status)
		}
		if bs.updateCalls != 1 {
			t.Errorf("expected exactly one write, got %d", bs.updateCalls)
		}
	})

	t.Run("paid record is never swept", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		bs.records = append(bs.records, &bookings.Booking{
			ID:        "bk-2",
			Status:    bookings.StatusPaid,
			PaidAt:    ago(10 * time.Minute),
			ExpiresAt: ago(time.Hour),
		})

		res := &Resolved{Type: RecordTypeBooking, Booking: mustFindBooking(t, bs, "bk-2")}
		svc.Sweep(res)

		if res.Booking.Status != bookings.StatusPaid || bs.updateCalls != 0 {
			t.Errorf("paid records are governed by the reuse window, not the sweep")
		}
	})

	t.Run("pending record inside its window is untouched", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		future := testNow.Add(10 * time.Minute)
		bs.records = append(bs.records, &bookings.Booking{
			ID:        "bk-3",
			Status:    bookings.StatusPending,
			ExpiresAt: &future,
		})

		res := &Resolved{Type: RecordTypeBooking, Booking: mustFindBooking(t, bs, "bk-3")}
		svc.Sweep(res)

		if res.Booking.Status != bookings.StatusPending || bs.updateCalls != 0 {
			t.Errorf("no write should happen before expiresAt")
		}
	})

	t.Run("record without expiresAt is untouched", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		bs.records = append(bs.records, &bookings.Booking{
			ID:     "bk-4",
			Status: bookings.StatusPending,
		})

		res := &Resolved{Type: RecordTypeBooking, Booking: mustFindBooking(t, bs, "bk-4")}
		svc.Sweep(res)

		if bs.updateCalls != 0 {
			t.Errorf("missing expiresAt must not trigger a sweep")
		}
	})
}

func mustFindBooking(t *testing.T, bs *mockBookingStore, id string) *bookings.Booking {
	t.Helper()
	b, err := bs.FindBySession(id)
	if err != nil || b == nil {
		t.Fatalf("fixture booking %q not found", id)
	}
	return b
}
