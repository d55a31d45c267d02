package team

import (
	"net/http"

	"navigator-backend/database"
	"navigator-backend/internal/domain/team"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /api/analysts
func ListAnalysts(c *gin.Context) {
	var analysts []team.Analyst
	if err := database.DB.
		Where("active = true").
		Order("sort_index ASC, name ASC").
		Find(&analysts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analysts"})
		return
	}
	c.JSON(http.StatusOK, analysts)
}

type analystRequest struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photoUrl"`
	SortIndex int    `json:"sortIndex"`
	Active    *bool  `json:"active"`
}

// POST /admin/analysts
func CreateAnalyst(c *gin.Context) {
	var body analystRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing analyst name"})
		return
	}

	a := team.Analyst{
		ID:        uuid.NewString(),
		Name:      body.Name,
		Title:     body.Title,
		Bio:       body.Bio,
		PhotoURL:  body.PhotoURL,
		SortIndex: body.SortIndex,
		Active:    true,
	}
	if body.Active != nil {
		a.Active = *body.Active
	}

	if err := database.DB.Create(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create analyst"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// PUT /admin/analysts/:id
func UpdateAnalyst(c *gin.Context) {
	var existing team.Analyst
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analyst not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analyst"})
		return
	}

	var body analystRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if body.Name != "" {
		existing.Name = body.Name
	}
	existing.Title = body.Title
	existing.Bio = body.Bio
	existing.PhotoURL = body.PhotoURL
	existing.SortIndex = body.SortIndex
	if body.Active != nil {
		existing.Active = *body.Active
	}

	if err := database.DB.Save(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update analyst"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DELETE /admin/analysts/:id
func DeleteAnalyst(c *gin.Context) {
	res := database.DB.Delete(&team.Analyst{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete analyst"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analyst not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
