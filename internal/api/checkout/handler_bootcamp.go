package checkout

import (
	"net/http"
	"os"
	"time"

	"navigator-backend/config"
	"navigator-backend/database"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type bootcampRegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// POST /api/bootcamps/:id/register
func CreateBootcampCheckout(c *gin.Context) {
	var body bootcampRegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.FullName == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fullName or email"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var bc bootcamps.Bootcamp
	if err := database.DB.Where("id = ? AND active = true", c.Param("id")).First(&bc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bootcamp not found"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(config.CHECKOUT_EXPIRY)

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/bootcamp/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/bootcamp/" + bc.ID + "?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),

		CustomerEmail: stripe.String(body.Email),
		ExpiresAt:     stripe.Int64(expiresAt.Unix()),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(bc.PriceUSD * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(bc.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	params.AddMetadata("type", "bootcamp")
	params.AddMetadata("full_name", truncateMeta(body.FullName))
	params.AddMetadata("email", truncateMeta(body.Email))
	params.AddMetadata("bootcamp_id", bc.ID)
	params.AddMetadata("bootcamp_name", truncateMeta(bc.Name))
	params.AddMetadata("bootcamp_description", truncateMeta(bc.Description))

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	reg := bootcamps.Registration{
		ID:              uuid.NewString(),
		StripeSessionID: stripe.String(s.ID),
		Status:          bookings.StatusPending,
		PaymentStatus:   "unpaid",

		CustomerName:  body.FullName,
		CustomerEmail: body.Email,

		BootcampID:          bc.ID,
		BootcampName:        bc.Name,
		BootcampDescription: bc.Description,

		Amount:    bc.PriceUSD,
		Currency:  "usd",
		ExpiresAt: &expiresAt,
	}
	if err := database.DB.Create(&reg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "sessionId": s.ID})
}
