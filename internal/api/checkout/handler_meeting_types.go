package checkout

import (
	"net/http"

	"navigator-backend/database"
	"navigator-backend/internal/domain/bookings"

	"github.com/gin-gonic/gin"
)

// GET /api/meeting-types — the booking form's product list.
func ListMeetingTypes(c *gin.Context) {
	var types []bookings.MeetingType
	if err := database.DB.
		Where("active = true").
		Order("price_usd ASC").
		Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load meeting types"})
		return
	}
	c.JSON(http.StatusOK, types)
}
