package drafts

import "time"

// BookingDraft holds the exact form fields submitted when checkout was
// initiated, keyed by the Stripe session id. Stripe metadata has length
// limits; the draft does not. It is written once at checkout creation and
// consumed (read then deleted) at most once during session resolution.
type BookingDraft struct {
	StripeSessionID string `gorm:"primaryKey" json:"stripeSessionId"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`

	MeetingTypeID    string `json:"meetingTypeId"`
	SelectedAnalyst  string `json:"selectedAnalyst"`
	SelectedMeeting  string `json:"selectedMeeting"`
	SelectedDate     string `json:"selectedDate"`
	SelectedTime     string `json:"selectedTime"`
	SelectedTimezone string `json:"selectedTimezone"`

	CreatedAt time.Time `json:"createdAt"`
}
