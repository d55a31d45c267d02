package database

import (
	"os"

	"navigator-backend/internal/domain/billing"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/content"
	"navigator-backend/internal/domain/drafts"
	"navigator-backend/internal/domain/newsletter"
	"navigator-backend/internal/domain/plans"
	"navigator-backend/internal/domain/team"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.WithError(err).Fatal("Failed to enable pgcrypto extension")
	}

	if err := DB.AutoMigrate(
		// checkout + reconciliation
		&bookings.Booking{},
		&bookings.MeetingType{},
		&bootcamps.Bootcamp{},
		&bootcamps.Registration{},
		&drafts.BookingDraft{},

		// subscriptions
		&plans.Plan{},
		&billing.Payment{},

		// marketing site
		&team.Analyst{},
		&newsletter.Subscriber{},
		&content.Article{},
	); err != nil {
		log.WithError(err).Fatal("AutoMigrate error")
	}

	log.Info("Connected and migrated successfully")
}
