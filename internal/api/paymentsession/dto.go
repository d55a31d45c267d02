package paymentsession

import "time"

// SessionView is the unified response shape; the caller gets the same
// envelope whether the session came from the booking or bootcamp flow.
type SessionView struct {
	RecordType    string  `json:"recordType"`
	SessionID     string  `json:"sessionId"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Expired       bool    `json:"expired"`

	Booking  *BookingView  `json:"booking,omitempty"`
	Bootcamp *BootcampView `json:"bootcamp,omitempty"`
	FormData *FormData     `json:"formData,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type BookingView struct {
	MeetingTypeID    string `json:"meetingTypeId,omitempty"`
	SelectedAnalyst  string `json:"selectedAnalyst,omitempty"`
	SelectedMeeting  string `json:"selectedMeeting,omitempty"`
	SelectedDate     string `json:"selectedDate,omitempty"`
	SelectedTime     string `json:"selectedTime,omitempty"`
	SelectedTimezone string `json:"selectedTimezone,omitempty"`
	CalendlyEventURI string `json:"calendlyEventUri,omitempty"`
}

type BootcampView struct {
	BootcampID          string `json:"bootcampId"`
	BootcampName        string `json:"bootcampName,omitempty"`
	BootcampDescription string `json:"bootcampDescription,omitempty"`
}

// RefreshView is the lightweight echo returned by the manual refresh endpoint.
type RefreshView struct {
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

func buildView(res *Resolved, gate GateResult, fd *FormData) SessionView {
	switch res.Type {
	case RecordTypeBooking:
		b := res.Booking
		return SessionView{
			RecordType:    string(RecordTypeBooking),
			SessionID:     b.SessionID(),
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			Amount:        b.Amount,
			Currency:      b.Currency,
			Expired:       gate.Expired,
			Booking: &BookingView{
				MeetingTypeID:    b.MeetingTypeID,
				SelectedAnalyst:  b.SelectedAnalyst,
				SelectedMeeting:  b.SelectedMeeting,
				SelectedDate:     b.SelectedDate,
				SelectedTime:     b.SelectedTime,
				SelectedTimezone: b.SelectedTimezone,
				CalendlyEventURI: b.CalendlyEventURI,
			},
			FormData:  fd,
			CreatedAt: b.CreatedAt,
			PaidAt:    b.PaidAt,
			ExpiresAt: b.ExpiresAt,
		}

	case RecordTypeBootcamp:
		r := res.Registration
		return SessionView{
			RecordType:    string(RecordTypeBootcamp),
			SessionID:     r.SessionID(),
			Status:        r.Status,
			PaymentStatus: r.PaymentStatus,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			Amount:        r.Amount,
			Currency:      r.Currency,
			Expired:       gate.Expired,
			Bootcamp: &BootcampView{
				BootcampID:          r.BootcampID,
				BootcampName:        r.BootcampName,
				BootcampDescription: r.BootcampDescription,
			},
			CreatedAt: r.CreatedAt,
			PaidAt:    r.PaidAt,
			ExpiresAt: r.ExpiresAt,
		}
	}
	return SessionView{}
}

func buildRefreshView(res *Resolved) RefreshView {
	switch res.Type {
	case RecordTypeBooking:
		return RefreshView{
			Status:        res.Booking.Status,
			PaymentStatus: res.Booking.PaymentStatus,
			LastUpdated:   res.Booking.UpdatedAt,
		}
	case RecordTypeBootcamp:
		return RefreshView{
			Status:        res.Registration.Status,
			PaymentStatus: res.Registration.PaymentStatus,
			LastUpdated:   res.Registration.UpdatedAt,
		}
	}
	return RefreshView{}
}
