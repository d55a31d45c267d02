package paymentsession

import (
	"errors"
	"time"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/drafts"

	"github.com/stripe/stripe-go/v75"
)

type mockBookingStore struct {
	records []*bookings.Booking

	findErr     error
	insertCalls int
	updateCalls int
}

func (m *mockBookingStore) FindBySession(sessionID string) (*bookings.Booking, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, b := range m.records {
		if (b.StripeSessionID != nil && *b.StripeSessionID == sessionID) || b.ID == sessionID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockBookingStore) InsertIfAbsent(b *bookings.Booking) error {
	m.insertCalls++
	for _, existing := range m.records {
		if existing.StripeSessionID != nil && b.StripeSessionID != nil &&
			*existing.StripeSessionID == *b.StripeSessionID {
			return nil // first writer won
		}
	}
	cp := *b
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockBookingStore) UpdateFields(id string, fields map[string]interface{}) error {
	m.updateCalls++
	for _, b := range m.records {
		if b.ID == id {
			if v, ok := fields["status"].(string); ok {
				b.Status = v
			}
			if v, ok := fields["payment_status"].(string); ok {
				b.PaymentStatus = v
			}
			return nil
		}
	}
	return errors.New("booking not found")
}

type mockRegistrationStore struct {
	records []*bootcamps.Registration

	insertCalls int
	updateCalls int
}

func (m *mockRegistrationStore) FindBySession(sessionID string) (*bootcamps.Registration, error) {
	for _, r := range m.records {
		if (r.StripeSessionID != nil && *r.StripeSessionID == sessionID) || r.ID == sessionID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRegistrationStore) InsertIfAbsent(r *bootcamps.Registration) error {
	m.insertCalls++
	for _, existing := range m.records {
		if existing.StripeSessionID != nil && r.StripeSessionID != nil &&
			*existing.StripeSessionID == *r.StripeSessionID {
			return nil
		}
	}
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockRegistrationStore) UpdateFields(id string, fields map[string]interface{}) error {
	m.updateCalls++
	for _, r := range m.records {
		if r.ID == id {
			if v, ok := fields["status"].(string); ok {
				r.Status = v
			}
			if v, ok := fields["payment_status"].(string); ok {
				r.PaymentStatus = v
			}
			return nil
		}
	}
	return errors.New("registration not found")
}

type mockDraftStore struct {
	byID    map[string]*drafts.BookingDraft
	deletes int
}

func (m *mockDraftStore) Find(sessionID string) (*drafts.BookingDraft, error) {
	d, ok := m.byID[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *mockDraftStore) Delete(sessionID string) error {
	m.deletes++
	delete(m.byID, sessionID)
	return nil
}

type mockProcessor struct {
	session *stripe.CheckoutSession
	err     error
	calls   int
}

func (m *mockProcessor) GetSession(id string) (*stripe.CheckoutSession, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.session == nil {
		return nil, errors.New("stripe: no such checkout session")
	}
	return m.session, nil
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockBookingStore, *mockRegistrationStore, *mockDraftStore, *mockProcessor) {
	bs := &mockBookingStore{}
	rs := &mockRegistrationStore{}
	ds := &mockDraftStore{byID: map[string]*drafts.BookingDraft{}}
	proc := &mockProcessor{}
	svc := &Service{
		bookings:      bs,
		registrations: rs,
		drafts:        ds,
		processor:     proc,
		reuseWindow:   time.Hour,
		now:           func() time.Time { return testNow },
	}
	return svc, bs, rs, ds, proc
}

func ago(d time.Duration) *time.Time {
	t := testNow.Add(-d)
	return &t
}
