package newsletter

import (
	"net/http"
	"strings"

	"navigator-backend/database"
	"navigator-backend/internal/domain/newsletter"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type subscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// POST /api/newsletter/subscribe — idempotent on email.
func Subscribe(c *gin.Context) {
	var body subscribeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	sub := newsletter.Subscriber{Email: email, Source: body.Source}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}
