package paymentsession

import (
	"time"

	"navigator-backend/config"
	"navigator-backend/database"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	stripeinfra "navigator-backend/internal/infra/stripe"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
)

// Service reconciles a checkout session id against the local records and,
// when neither collection has it yet (success-page poll racing the webhook),
// against Stripe itself.
type Service struct {
	bookings      BookingStore
	registrations RegistrationStore
	drafts        DraftStore
	processor     stripeinfra.SessionRetriever

	reuseWindow time.Duration
	now         func() time.Time
}

func NewService() *Service {
	return &Service{
		bookings:      gormBookingStore{db: database.DB},
		registrations: gormRegistrationStore{db: database.DB},
		drafts:        gormDraftStore{db: database.DB},
		processor:     stripeinfra.NewLiveClient(),
		reuseWindow:   config.SESSION_REUSE_WINDOW,
		now:           time.Now,
	}
}

// Resolve returns the record behind a session id. Local collections win;
// the Stripe fallback only fires when no record exists anywhere, and its
// result is persisted so the system is consistent on read. A record comes
// from exactly one source, never a merge.
func (s *Service) Resolve(sessionID string) (*Resolved, error) {
	b, err := s.bookings.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return &Resolved{Type: RecordTypeBooking, Booking: b}, nil
	}

	r, err := s.registrations.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if r != nil {
		return &Resolved{Type: RecordTypeBootcamp, Registration: r}, nil
	}

	return s.resolveFromProcessor(sessionID)
}

func (s *Service) resolveFromProcessor(sessionID string) (*Resolved, error) {
	sess, err := s.processor.GetSession(sessionID)
	if err != nil || sess == nil {
		// Unknown session and processor failure look the same to the caller.
		log.WithField("session_id", sessionID).WithError(err).
			Warn("Stripe lookup failed, treating session as not found")
		return nil, ErrSessionNotFound
	}

	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, ErrSessionNotFound
	}

	switch classifySession(sess) {
	case RecordTypeBooking:
		b := s.bookingFromSession(sess)
		if err := s.bookings.InsertIfAbsent(b); err != nil {
			return nil, err
		}
		// Re-read so concurrent resolvers converge on whichever write won.
		if won, err := s.bookings.FindBySession(sessionID); err == nil && won != nil {
			b = won
		}
		log.WithField("session_id", sessionID).Info("Booking reconstructed from Stripe session")
		return &Resolved{Type: RecordTypeBooking, Booking: b}, nil

	case RecordTypeBootcamp:
		r := s.registrationFromSession(sess)
		if err := s.registrations.InsertIfAbsent(r); err != nil {
			return nil, err
		}
		if won, err := s.registrations.FindBySession(sessionID); err == nil && won != nil {
			r = won
		}
		log.WithField("session_id", sessionID).Info("Registration reconstructed from Stripe session")
		return &Resolved{Type: RecordTypeBootcamp, Registration: r}, nil

	default:
		return nil, ErrSessionNotFound
	}
}

// classifySession prefers the explicit metadata tag; older checkout code
// omitted it, so a payment-mode session with booking- or bootcamp-shaped
// metadata keys is accepted too.
func classifySession(sess *stripe.CheckoutSession) RecordType {
	md := sess.Metadata
	switch md["type"] {
	case "booking":
		return RecordTypeBooking
	case "bootcamp":
		return RecordTypeBootcamp
	}
	if sess.Mode == stripe.CheckoutSessionModePayment {
		if md["meeting_type_id"] != "" || md["selected_analyst"] != "" {
			return RecordTypeBooking
		}
		if md["bootcamp_id"] != "" {
			return RecordTypeBootcamp
		}
	}
	return ""
}

func (s *Service) bookingFromSession(sess *stripe.CheckoutSession) *bookings.Booking {
	now := s.now()
	md := sess.Metadata
	b := &bookings.Booking{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(sess.ID),
		Status:          bookings.StatusPaid,
		PaymentStatus:   stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),

		CustomerName:  md["full_name"],
		CustomerEmail: md["email"],
		Notes:         md["notes"],

		MeetingTypeID:    md["meeting_type_id"],
		SelectedAnalyst:  md["selected_analyst"],
		SelectedMeeting:  md["selected_meeting"],
		SelectedDate:     md["selected_date"],
		SelectedTime:     md["selected_time"],
		SelectedTimezone: md["selected_timezone"],

		Amount:    float64(sess.AmountTotal) / 100.0,
		Currency:  string(sess.Currency),
		CreatedAt: now,
		UpdatedAt: now,
		PaidAt:    &now,
	}
	if b.CustomerEmail == "" && sess.CustomerDetails != nil {
		b.CustomerEmail = sess.CustomerDetails.Email
	}
	if b.CustomerName == "" && sess.CustomerDetails != nil {
		b.CustomerName = sess.CustomerDetails.Name
	}
	return b
}

func (s *Service) registrationFromSession(sess *stripe.CheckoutSession) *bootcamps.Registration {
	now := s.now()
	md := sess.Metadata
	r := &bootcamps.Registration{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(sess.ID),
		Status:          bookings.StatusPaid,
		PaymentStatus:   stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),

		CustomerName:  md["full_name"],
		CustomerEmail: md["email"],

		BootcampID:          md["bootcamp_id"],
		BootcampName:        md["bootcamp_name"],
		BootcampDescription: md["bootcamp_description"],

		Amount:    float64(sess.AmountTotal) / 100.0,
		Currency:  string(sess.Currency),
		CreatedAt: now,
		UpdatedAt: now,
		PaidAt:    &now,
	}
	if r.CustomerEmail == "" && sess.CustomerDetails != nil {
		r.CustomerEmail = sess.CustomerDetails.Email
	}
	if r.CustomerName == "" && sess.CustomerDetails != nil {
		r.CustomerName = sess.CustomerDetails.Name
	}
	return r
}
