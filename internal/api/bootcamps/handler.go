package bootcampsapi

import (
	"net/http"

	"navigator-backend/database"
	"navigator-backend/internal/domain/bootcamps"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/bootcamps
func ListBootcamps(c *gin.Context) {
	var all []bootcamps.Bootcamp
	if err := database.DB.
		Where("active = true").
		Order("start_date ASC").
		Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bootcamps"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /api/bootcamps/:id
func GetBootcamp(c *gin.Context) {
	var bc bootcamps.Bootcamp
	if err := database.DB.First(&bc, "id = ? AND active = true", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bootcamp not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bootcamp"})
		return
	}
	c.JSON(http.StatusOK, bc)
}
