package newsletter

import "time"

type Subscriber struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Source    string
	CreatedAt time.Time
}
