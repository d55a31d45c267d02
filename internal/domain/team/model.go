package team

import "time"

// Analyst is a mentor shown on the marketing site and selectable at booking time.
type Analyst struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	SortIndex int    `json:"sortIndex"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
