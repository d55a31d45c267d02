package billing

import (
	"navigator-backend/internal/domain/plans"
	"time"
)

// Payment is one settled subscription checkout, written by the webhook.
type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	PlanID               *uint
	Plan                 *plans.Plan
	CustomerEmail        string
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountUSD            float64
	Status               string
	CreatedAt            time.Time
}
