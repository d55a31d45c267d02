package adminapi

import (
	"net/http"

	"navigator-backend/database"
	"navigator-backend/internal/domain/billing"
	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/newsletter"

	"github.com/gin-gonic/gin"
)

// GET /admin/dashboard
func AdminDashboard(c *gin.Context) {
	var bookingCount, paidBookingCount, registrationCount, subscriberCount int64

	database.DB.Model(&bookings.Booking{}).Count(&bookingCount)
	database.DB.Model(&bookings.Booking{}).
		Where("status IN ?", []string{bookings.StatusPaid, bookings.StatusConfirmed}).
		Count(&paidBookingCount)
	database.DB.Model(&bootcamps.Registration{}).Count(&registrationCount)
	database.DB.Model(&newsletter.Subscriber{}).Count(&subscriberCount)

	c.JSON(http.StatusOK, gin.H{
		"bookings":      bookingCount,
		"paid_bookings": paidBookingCount,
		"registrations": registrationCount,
		"subscribers":   subscriberCount,
	})
}

// GET /admin/bookings
func ListAllBookings(c *gin.Context) {
	var all []bookings.Booking
	q := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /admin/registrations
func ListAllRegistrations(c *gin.Context) {
	var all []bootcamps.Registration
	q := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registrations"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /admin/payments
func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.
		Preload("Plan").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
