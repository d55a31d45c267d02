package paymentsession

import (
	"errors"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/drafts"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store interfaces are the resolver's only view of persistence. Lookups
// return (nil, nil) on a clean miss so the core can distinguish "absent"
// from "store broken" without sentinel juggling.

type BookingStore interface {
	FindBySession(sessionID string) (*bookings.Booking, error)
	InsertIfAbsent(b *bookings.Booking) error
	UpdateFields(id string, fields map[string]interface{}) error
}

type RegistrationStore interface {
	FindBySession(sessionID string) (*bootcamps.Registration, error)
	InsertIfAbsent(r *bootcamps.Registration) error
	UpdateFields(id string, fields map[string]interface{}) error
}

type DraftStore interface {
	Find(sessionID string) (*drafts.BookingDraft, error)
	Delete(sessionID string) error
}

type gormBookingStore struct{ db *gorm.DB }

func (s gormBookingStore) FindBySession(sessionID string) (*bookings.Booking, error) {
	var b bookings.Booking
	err := s.db.Where("stripe_session_id = ? OR id = ?", sessionID, sessionID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s gormBookingStore) InsertIfAbsent(b *bookings.Booking) error {
	// First writer wins; a concurrent webhook or second tab becomes a no-op.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(b).Error
}

func (s gormBookingStore) UpdateFields(id string, fields map[string]interface{}) error {
	return s.db.Model(&bookings.Booking{}).Where("id = ?", id).Updates(fields).Error
}

type gormRegistrationStore struct{ db *gorm.DB }

func (s gormRegistrationStore) FindBySession(sessionID string) (*bootcamps.Registration, error) {
	var r bootcamps.Registration
	err := s.db.Where("stripe_session_id = ? OR id = ?", sessionID, sessionID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s gormRegistrationStore) InsertIfAbsent(r *bootcamps.Registration) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_session_id"}},
		DoNothing: true,
	}).Create(r).Error
}

func (s gormRegistrationStore) UpdateFields(id string, fields map[string]interface{}) error {
	return s.db.Model(&bootcamps.Registration{}).Where("id = ?", id).Updates(fields).Error
}

type gormDraftStore struct{ db *gorm.DB }

func (s gormDraftStore) Find(sessionID string) (*drafts.BookingDraft, error) {
	var d drafts.BookingDraft
	err := s.db.Where("stripe_session_id = ?", sessionID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s gormDraftStore) Delete(sessionID string) error {
	return s.db.Delete(&drafts.BookingDraft{}, "stripe_session_id = ?", sessionID).Error
}
