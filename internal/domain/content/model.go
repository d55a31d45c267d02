package content

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article is a research piece rendered by the marketing site.
type Article struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Body    string `json:"body,omitempty"`
	Author  string `json:"author,omitempty"`
	Status  string `gorm:"default:draft" json:"status"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
