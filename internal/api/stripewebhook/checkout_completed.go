package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"navigator-backend/database"
	"navigator-backend/internal/domain/billing"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/plans"
	stripeinfra "navigator-backend/internal/infra/stripe"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	// Fetch the full session; webhook payloads omit expansions.
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{stripe.String("customer")},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	switch fullSession.Metadata["type"] {
	case "booking":
		return completeBooking(fullSession)
	case "bootcamp":
		return completeRegistration(fullSession)
	}

	if fullSession.Mode == stripe.CheckoutSessionModeSubscription {
		return recordSubscriptionPayment(fullSession)
	}

	// Unrecognized payment session: nothing to reconcile, ack it.
	return nil
}

// completeBooking marks the pending booking PAID and writes the submitted
// form fields onto the record. If the success-page poll won the race and
// already synthesized the record, the insert is a no-op and only the
// update applies.
func completeBooking(sess *stripe.CheckoutSession) error {
	now := time.Now()
	md := sess.Metadata

	b := bookings.Booking{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(sess.ID),
		Status:          bookings.StatusPaid,
		PaymentStatus:   stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),

		CustomerName:  md["full_name"],
		CustomerEmail: customerEmail(sess),
		Notes:         md["notes"],

		MeetingTypeID:    md["meeting_type_id"],
		SelectedAnalyst:  md["selected_analyst"],
		SelectedMeeting:  md["selected_meeting"],
		SelectedDate:     md["selected_date"],
		SelectedTime:     md["selected_time"],
		SelectedTimezone: md["selected_timezone"],

		Amount:   float64(sess.AmountTotal) / 100.0,
		Currency: string(sess.Currency),
		PaidAt:   &now,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(&b).Error; err != nil {
		return fmt.Errorf("failed to upsert booking: %w", err)
	}

	updates := map[string]interface{}{
		"status":         bookings.StatusPaid,
		"payment_status": stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),
		"paid_at":        now,

		"customer_name":     md["full_name"],
		"notes":             md["notes"],
		"meeting_type_id":   md["meeting_type_id"],
		"selected_analyst":  md["selected_analyst"],
		"selected_meeting":  md["selected_meeting"],
		"selected_date":     md["selected_date"],
		"selected_time":     md["selected_time"],
		"selected_timezone": md["selected_timezone"],
	}
	if err := database.DB.Model(&bookings.Booking{}).
		Where("stripe_session_id = ?", sess.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update booking after checkout: %w", err)
	}
	return nil
}

func completeRegistration(sess *stripe.CheckoutSession) error {
	now := time.Now()
	md := sess.Metadata

	r := bootcamps.Registration{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(sess.ID),
		Status:          bookings.StatusPaid,
		PaymentStatus:   stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),

		CustomerName:  md["full_name"],
		CustomerEmail: customerEmail(sess),

		BootcampID:          md["bootcamp_id"],
		BootcampName:        md["bootcamp_name"],
		BootcampDescription: md["bootcamp_description"],

		Amount:   float64(sess.AmountTotal) / 100.0,
		Currency: string(sess.Currency),
		PaidAt:   &now,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(&r).Error; err != nil {
		return fmt.Errorf("failed to upsert registration: %w", err)
	}

	if err := database.DB.Model(&bootcamps.Registration{}).
		Where("stripe_session_id = ?", sess.ID).
		Updates(map[string]interface{}{
			"status":         bookings.StatusPaid,
			"payment_status": stripeinfra.NormalizePaymentStatus(string(sess.PaymentStatus)),
			"paid_at":        now,
		}).Error; err != nil {
		return fmt.Errorf("failed to update registration after checkout: %w", err)
	}
	return nil
}

func recordSubscriptionPayment(sess *stripe.CheckoutSession) error {
	payment := paymentFromSession(sess, func(priceID string) *plans.Plan {
		var plan plans.Plan
		if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
			return nil
		}
		return &plan
	})

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(&payment).Error
	if err != nil {
		return fmt.Errorf("failed to record subscription payment: %w", err)
	}
	return nil
}

// paymentFromSession maps a subscription-mode session onto a payment row.
// The plan is matched through the session's own metadata; the checkout
// handler mirrors plan_id there because subscription_data metadata ends up
// on the Subscription object, not the session.
func paymentFromSession(sess *stripe.CheckoutSession, findPlan func(priceID string) *plans.Plan) billing.Payment {
	payment := billing.Payment{
		CustomerEmail:   customerEmail(sess),
		StripeSessionID: sess.ID,
		AmountUSD:       float64(sess.AmountTotal) / 100.0,
		Status:          string(sess.PaymentStatus),
	}
	if sess.Subscription != nil && sess.Subscription.ID != "" {
		payment.StripeSubscriptionID = stripe.String(sess.Subscription.ID)
	}
	if priceID := sess.Metadata["plan_id"]; priceID != "" {
		if plan := findPlan(priceID); plan != nil {
			payment.PlanID = &plan.ID
		}
	}
	return payment
}

// handleCheckoutSessionExpired marks a still-pending record EXPIRED.
// Records that progressed past PENDING are left alone.
func handleCheckoutSessionExpired(sess *stripe.CheckoutSession) error {
	res := database.DB.Model(&bookings.Booking{}).
		Where("stripe_session_id = ? AND status = ?", sess.ID, bookings.StatusPending).
		Updates(map[string]interface{}{
			"status":         bookings.StatusExpired,
			"payment_status": bookings.StatusExpired,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	err := database.DB.Model(&bootcamps.Registration{}).
		Where("stripe_session_id = ? AND status = ?", sess.ID, bookings.StatusPending).
		Updates(map[string]interface{}{
			"status":         bookings.StatusExpired,
			"payment_status": bookings.StatusExpired,
		}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func customerEmail(sess *stripe.CheckoutSession) string {
	if md := sess.Metadata["email"]; md != "" {
		return md
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	if sess.Customer != nil {
		return sess.Customer.Email
	}
	return ""
}
