package routes

import (
	adminapi "navigator-backend/internal/api/admin"
	bootcampsapi "navigator-backend/internal/api/bootcamps"
	"navigator-backend/internal/api/checkout"
	contentapi "navigator-backend/internal/api/content"
	newsletterapi "navigator-backend/internal/api/newsletter"
	"navigator-backend/internal/api/paymentsession"
	"navigator-backend/internal/api/plans"
	stripewebhooks "navigator-backend/internal/api/stripewebhook"
	teamapi "navigator-backend/internal/api/team"
	"navigator-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Session resolution is read-only and takes no request body.
	api.GET("/payment/session/:sessionId", paymentsession.GetPaymentSession)
	api.POST("/payment/session/:sessionId/refresh", paymentsession.RefreshPaymentSession)

	api.GET("/meeting-types", checkout.ListMeetingTypes)
	api.GET("/analysts", teamapi.ListAnalysts)
	api.GET("/bootcamps", bootcampsapi.ListBootcamps)
	api.GET("/bootcamps/:id", bootcampsapi.GetBootcamp)
	api.GET("/plans", plans.ListPlans)
	api.GET("/articles", contentapi.ListArticles)
	api.GET("/articles/:slug", contentapi.GetArticle)

	// Public form submissions get sanitized.
	public := api.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/bookings/checkout", checkout.CreateBookingCheckout)
	public.POST("/bootcamps/:id/register", checkout.CreateBootcampCheckout)
	public.POST("/subscribe", checkout.CreateSubscriptionCheckout)
	public.POST("/newsletter/subscribe", newsletterapi.Subscribe)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/bookings", adminapi.ListAllBookings)
	admin.GET("/registrations", adminapi.ListAllRegistrations)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)

	admin.POST("/analysts", teamapi.CreateAnalyst)
	admin.PUT("/analysts/:id", teamapi.UpdateAnalyst)
	admin.DELETE("/analysts/:id", teamapi.DeleteAnalyst)
}
