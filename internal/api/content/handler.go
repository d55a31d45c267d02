package content

import (
	"net/http"

	"navigator-backend/database"
	"navigator-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type articleSummaryDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// GET /api/articles
func ListArticles(c *gin.Context) {
	var articles []content.Article
	if err := database.DB.
		Where("status = ?", content.StatusPublished).
		Order("published_at DESC").
		Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load articles"})
		return
	}

	out := make([]articleSummaryDTO, 0, len(articles))
	for _, a := range articles {
		dto := articleSummaryDTO{
			Slug:    a.Slug,
			Title:   a.Title,
			Summary: a.Summary,
			Author:  a.Author,
		}
		if a.PublishedAt != nil {
			dto.PublishedAt = a.PublishedAt.Format("2006-01-02")
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, gin.H{"articles": out})
}

// GET /api/articles/:slug
func GetArticle(c *gin.Context) {
	var article content.Article
	err := database.DB.
		First(&article, "slug = ? AND status = ?", c.Param("slug"), content.StatusPublished).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load article"})
		return
	}
	c.JSON(http.StatusOK, article)
}
