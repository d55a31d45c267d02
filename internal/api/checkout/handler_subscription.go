package checkout

import (
	"net/http"
	"os"

	"navigator-backend/config"
	"navigator-backend/database"
	"navigator-backend/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

type subscribeRequest struct {
	PriceID string `json:"price_id"`
	Email   string `json:"email"`
}

// POST /api/subscribe — premium subscription checkout.
func CreateSubscriptionCheckout(c *gin.Context) {
	var body subscribeRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id/email"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	// allow-list price id
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(body.Email),
		Metadata: map[string]string{
			"app_env": os.Getenv("APP_ENV"),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
		return
	}

	params := subscriptionCheckoutParams(plan, body.Email, cus.ID)

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func subscriptionCheckoutParams(plan plans.Plan, email, customerID string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/premium?subscribed=1"),
		CancelURL:  stripe.String(config.APP_URL + "/premium?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"plan_id": plan.StripePriceID,
				"email":   email,
			},
		},
	}

	// SubscriptionData.Metadata lands on the Subscription object; the
	// webhook reconciles against the session's own metadata, so the keys
	// have to live on the session too.
	params.AddMetadata("plan_id", plan.StripePriceID)
	params.AddMetadata("email", email)

	return params
}
