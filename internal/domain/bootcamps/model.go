package bootcamps

import "time"

// Bootcamp is a catalog entry shown on the marketing site.
type Bootcamp struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceUSD    float64 `json:"priceUsd"`
	StartDate   string  `json:"startDate,omitempty"`
	Active      bool    `json:"active"`
}

// Registration is one paid (or pending) seat in a bootcamp. Same lifecycle
// vocabulary as bookings; status constants live in the bookings package.
type Registration struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	StripeSessionID *string `gorm:"uniqueIndex" json:"stripeSessionId,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	BootcampID          string `json:"bootcampId"`
	BootcampName        string `json:"bootcampName,omitempty"`
	BootcampDescription string `json:"bootcampDescription,omitempty"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (r *Registration) SessionID() string {
	if r.StripeSessionID != nil && *r.StripeSessionID != "" {
		return *r.StripeSessionID
	}
	return r.ID
}
