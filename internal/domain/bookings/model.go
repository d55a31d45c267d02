package bookings

import "time"

// Local lifecycle states. Kept separate from Stripe's own payment_status
// string: the two vocabularies don't match and callers may need either.
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusConfirmed = "CONFIRMED"
	StatusExpired   = "EXPIRED"
)

// Booking is one mentorship booking attempt. StripeSessionID is the
// effective primary lookup key; very old records predate it and are only
// reachable through their local ID.
type Booking struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	StripeSessionID *string `gorm:"uniqueIndex" json:"stripeSessionId,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Notes         string `json:"notes,omitempty"`

	MeetingTypeID    string `json:"meetingTypeId,omitempty"`
	SelectedAnalyst  string `json:"selectedAnalyst,omitempty"`
	SelectedMeeting  string `json:"selectedMeeting,omitempty"`
	SelectedDate     string `json:"selectedDate,omitempty"`
	SelectedTime     string `json:"selectedTime,omitempty"`
	SelectedTimezone string `json:"selectedTimezone,omitempty"`

	CalendlyEventURI   string `json:"calendlyEventUri,omitempty"`
	CalendlyInviteeURI string `json:"calendlyInviteeUri,omitempty"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// SessionID returns the external correlation key, falling back to the
// local id for legacy rows.
func (b *Booking) SessionID() string {
	if b.StripeSessionID != nil && *b.StripeSessionID != "" {
		return *b.StripeSessionID
	}
	return b.ID
}

// HasSlotFields reports whether the record itself carries the submitted
// form selection (true once the webhook has written it).
func (b *Booking) HasSlotFields() bool {
	return b.MeetingTypeID != "" || b.SelectedAnalyst != "" || b.SelectedMeeting != "" ||
		b.SelectedDate != "" || b.SelectedTime != ""
}

// MeetingType is the allow-list of bookable meeting products; prices are
// resolved locally, never trusted from the client.
type MeetingType struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"durationMin"`
	PriceUSD    float64 `json:"priceUsd"`
	Active      bool    `json:"active"`
}
