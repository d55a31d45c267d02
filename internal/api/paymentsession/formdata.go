package paymentsession

import (
	"navigator-backend/internal/domain/drafts"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
)

// FormData is the reconstructed checkout form for a booking session.
type FormData struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Notes            string `json:"notes"`
	MeetingTypeID    string `json:"meetingTypeId"`
	SelectedAnalyst  string `json:"selectedAnalyst"`
	SelectedMeeting  string `json:"selectedMeeting"`
	SelectedDate     string `json:"selectedDate"`
	SelectedTime     string `json:"selectedTime"`
	SelectedTimezone string `json:"selectedTimezone"`
}

// AssembleFormData rebuilds the submitted form for booking sessions from a
// strict priority chain: draft, record fields, Stripe metadata, then a
// minimal name/email fallback. The first source that matches wins outright;
// fields are never merged across sources, so the provenance of every
// response is unambiguous. Returns nil when nothing is recoverable.
func (s *Service) AssembleFormData(res *Resolved) *FormData {
	if res.Type != RecordTypeBooking {
		return nil
	}
	b := res.Booking
	sessionID := b.SessionID()

	// 1. The draft is exactly what the user typed, free of Stripe's metadata
	// length limits. Consuming it deletes it: this is the single point where
	// the draft becomes used, so repeat polls fall through to later sources.
	if d, err := s.drafts.Find(sessionID); err != nil {
		log.WithField("session_id", sessionID).WithError(err).Warn("Draft lookup failed")
	} else if d != nil {
		if err := s.drafts.Delete(sessionID); err != nil {
			log.WithField("session_id", sessionID).WithError(err).Warn("Draft delete failed")
		}
		return fromDraft(d)
	}

	// 2. Record fields, once the webhook has written them.
	if b.HasSlotFields() {
		return &FormData{
			FullName:         b.CustomerName,
			Email:            b.CustomerEmail,
			Notes:            b.Notes,
			MeetingTypeID:    b.MeetingTypeID,
			SelectedAnalyst:  b.SelectedAnalyst,
			SelectedMeeting:  b.SelectedMeeting,
			SelectedDate:     b.SelectedDate,
			SelectedTime:     b.SelectedTime,
			SelectedTimezone: b.SelectedTimezone,
		}
	}

	// 3. Stripe session metadata, tolerating the older checkout code path
	// that tagged nothing but still wrote booking-shaped keys.
	if b.StripeSessionID != nil && *b.StripeSessionID != "" {
		if sess, err := s.processor.GetSession(*b.StripeSessionID); err == nil && sess != nil {
			if fd := fromMetadata(sess); fd != nil {
				return fd
			}
		}
	}

	// 4. Never silently drop a recoverable identity.
	if b.CustomerName != "" || b.CustomerEmail != "" {
		return &FormData{FullName: b.CustomerName, Email: b.CustomerEmail}
	}

	return nil
}

func fromDraft(d *drafts.BookingDraft) *FormData {
	return &FormData{
		FullName:         d.FullName,
		Email:            d.Email,
		Notes:            d.Notes,
		MeetingTypeID:    d.MeetingTypeID,
		SelectedAnalyst:  d.SelectedAnalyst,
		SelectedMeeting:  d.SelectedMeeting,
		SelectedDate:     d.SelectedDate,
		SelectedTime:     d.SelectedTime,
		SelectedTimezone: d.SelectedTimezone,
	}
}

func fromMetadata(sess *stripe.CheckoutSession) *FormData {
	md := sess.Metadata
	tagged := md["type"] == "booking"
	shaped := sess.Mode == stripe.CheckoutSessionModePayment &&
		(md["meeting_type_id"] != "" || md["selected_analyst"] != "")
	if !tagged && !shaped {
		return nil
	}
	return &FormData{
		FullName:         md["full_name"],
		Email:            md["email"],
		Notes:            md["notes"],
		MeetingTypeID:    md["meeting_type_id"],
		SelectedAnalyst:  md["selected_analyst"],
		SelectedMeeting:  md["selected_meeting"],
		SelectedDate:     md["selected_date"],
		SelectedTime:     md["selected_time"],
		SelectedTimezone: md["selected_timezone"],
	}
}
