package handlers

import (
	"errors"
	"net/http"

	"covoiturage-api/config"
	"covoiturage-api/lifecycle"
	"covoiturage-api/logger"
	"covoiturage-api/middleware"
	"covoiturage-api/models"
	"covoiturage-api/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookTripRequest struct {
	TripID uint `json:"trip_id" binding:"required"`
	Seats  int  `json:"seats" binding:"required,min=1"`
}

var errNotEnoughSeats = errors.New("not enough available seats")

// BookTrip claims seats on a trip (passenger only).
//
// The seat decrement and the booking row are committed in one
// transaction, and the UPDATE carries the availability check in its
// predicate: a request racing for the last seats either wins the row
// or affects zero rows and gets a capacity error. available_seats can
// never go negative, and an over-capacity request is rejected outright,
// never clamped.
//
// The driver notification afterwards is best-effort: its failure is
// reported in the response but the booking stands.
func BookTrip(c *gin.Context) {
	passengerID := middleware.GetUserID(c)

	var req BookTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var trip models.Trip
	if err := config.DB.First(&trip, req.TripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if !lifecycle.Bookable(trip.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip is not open for booking"})
		return
	}

	booking := models.Booking{
		TripID:      trip.ID,
		PassengerID: passengerID,
		Seats:       req.Seats,
		Status:      models.BookingConfirmed,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Trip{}).
			Where("id = ? AND available_seats >= ?", req.TripID, req.Seats).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", req.Seats))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotEnoughSeats
		}
		return tx.Create(&booking).Error
	})
	if errors.Is(err, errNotEnoughSeats) {
		// The pre-transaction snapshot may be stale by now; report the
		// count the guarded UPDATE actually saw
		config.DB.First(&trip, req.TripID)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Not enough available seats",
			"available_seats": trip.AvailableSeats,
			"requested":       req.Seats,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book trip"})
		return
	}

	config.DB.First(&trip, trip.ID)

	// Notify the driver that seats were claimed. Record + email are
	// decoupled from the booking itself.
	emailStatus := models.EmailFailed
	var driver models.User
	if err := config.DB.First(&driver, trip.DriverID).Error; err == nil {
		note := models.Notification{
			RecipientID: driver.ID,
			SenderID:    passengerID,
			TripID:      &trip.ID,
			Message:     notify.BookingMessage(middleware.GetEmail(c), req.Seats, &trip),
		}
		if err := notify.Dispatch(config.DB, Mail, &note, &driver); err != nil {
			log.Error("booking notification dispatch failed", logger.Error(err),
				logger.Uint("booking_id", booking.ID))
		} else {
			emailStatus = note.EmailStatus
		}
	} else {
		log.Error("driver lookup failed after booking", logger.Error(err),
			logger.Uint("trip_id", trip.ID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Booking confirmed",
		"booking":         booking,
		"seats_remaining": trip.AvailableSeats,
		"email_status":    emailStatus,
	})
}

// GetMyBookings returns all bookings of the logged-in passenger
func GetMyBookings(c *gin.Context) {
	passengerID := middleware.GetUserID(c)
	var bookings []models.Booking
	config.DB.Preload("Trip.Driver").
		Where("passenger_id = ?", passengerID).
		Order("created_at desc").
		Find(&bookings)
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}
