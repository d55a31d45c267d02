package checkout

import (
	"net/http"
	"os"
	"time"

	"navigator-backend/config"
	"navigator-backend/database"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/drafts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type bookingCheckoutRequest struct {
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

// POST /api/bookings/checkout
//
// Creates the PENDING booking, the form draft, and the Stripe session in
// that order. The form fields are mirrored into session metadata too, but
// metadata values are length-limited, so the draft stays the authoritative
// copy for the success-page resolution.
func CreateBookingCheckout(c *gin.Context) {
	var body bookingCheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.FullName == "" || body.Email == "" || body.MeetingTypeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required booking fields"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	// allow-list the meeting type; price comes from our table, never the client
	var mt bookings.MeetingType
	if err := database.DB.Where("id = ? AND active = true", body.MeetingTypeID).First(&mt).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown meeting type"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(config.CHECKOUT_EXPIRY)

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/booking/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/booking?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),

		CustomerEmail: stripe.String(body.Email),
		ExpiresAt:     stripe.Int64(expiresAt.Unix()),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(mt.PriceUSD * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(mt.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	// Mirrored into metadata for webhook-side reconciliation; the draft
	// row below keeps the untruncated copy.
	params.AddMetadata("type", "booking")
	params.AddMetadata("full_name", truncateMeta(body.FullName))
	params.AddMetadata("email", truncateMeta(body.Email))
	params.AddMetadata("notes", truncateMeta(body.Notes))
	params.AddMetadata("meeting_type_id", body.MeetingTypeID)
	params.AddMetadata("selected_analyst", truncateMeta(body.SelectedAnalyst))
	params.AddMetadata("selected_meeting", truncateMeta(body.SelectedMeeting))
	params.AddMetadata("selected_date", body.SelectedDate)
	params.AddMetadata("selected_time", body.SelectedTime)
	params.AddMetadata("selected_timezone", body.SelectedTimezone)

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	booking := bookings.Booking{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(s.ID),
		Status:          bookings.StatusPending,
		PaymentStatus:   "unpaid",

		CustomerName:  body.FullName,
		CustomerEmail: body.Email,
		Notes:         body.Notes,

		MeetingTypeID:    body.MeetingTypeID,
		SelectedAnalyst:  body.SelectedAnalyst,
		SelectedMeeting:  body.SelectedMeeting,
		SelectedDate:     body.SelectedDate,
		SelectedTime:     body.SelectedTime,
		SelectedTimezone: body.SelectedTimezone,

		Amount:    mt.PriceUSD,
		Currency:  "usd",
		ExpiresAt: &expiresAt,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store booking"})
		return
	}

	draft := drafts.BookingDraft{
		StripeSessionID:  s.ID,
		FullName:         body.FullName,
		Email:            body.Email,
		Notes:            body.Notes,
		MeetingTypeID:    body.MeetingTypeID,
		SelectedAnalyst:  body.SelectedAnalyst,
		SelectedMeeting:  body.SelectedMeeting,
		SelectedDate:     body.SelectedDate,
		SelectedTime:     body.SelectedTime,
		SelectedTimezone: body.SelectedTimezone,
	}
	if err := database.DB.Create(&draft).Error; err != nil {
		// Resolution falls back to record fields / metadata without it.
		log.WithField("session_id", s.ID).WithError(err).Warn("Failed to store booking draft")
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "sessionId": s.ID})
}

// Stripe caps metadata values at 500 characters.
func truncateMeta(s string) string {
	if len(s) > 450 {
		return s[:450]
	}
	return s
}
