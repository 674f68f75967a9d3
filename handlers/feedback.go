package handlers

import (
	"net/http"
	"strings"

	"covoiturage-api/config"
	"covoiturage-api/middleware"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
)

type SubmitFeedbackRequest struct {
	TripID  uint   `json:"trip_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// SubmitFeedback records a rating for a completed trip (passenger
// only). The gate: the passenger must hold a booking on the trip, the
// trip must be completed, and no prior feedback may exist for this
// (trip, passenger) pair.
func SubmitFeedback(c *gin.Context) {
	passengerID := middleware.GetUserID(c)

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must not be empty"})
		return
	}

	var trip models.Trip
	if err := config.DB.First(&trip, req.TripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if trip.Status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback can only be submitted for completed trips"})
		return
	}

	var booking models.Booking
	if err := config.DB.Where("trip_id = ? AND passenger_id = ? AND status = ?",
		trip.ID, passengerID, models.BookingConfirmed).First(&booking).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review trips you booked"})
		return
	}

	var existing models.Feedback
	if err := config.DB.Where("trip_id = ? AND passenger_id = ?", trip.ID, passengerID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Feedback already submitted for this trip"})
		return
	}

	feedback := models.Feedback{
		TripID:      trip.ID,
		PassengerID: passengerID,
		BookingID:   booking.ID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := config.DB.Create(&feedback).Error; err != nil {
		// Unique index catches a racing duplicate the check above missed
		c.JSON(http.StatusConflict, gin.H{"error": "Feedback already submitted for this trip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted", "feedback": feedback})
}

// GetTripFeedback lists feedback on one of the driver's own trips
func GetTripFeedback(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var trip models.Trip
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driverID).
		First(&trip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not authorized"})
		return
	}

	var feedbacks []models.Feedback
	config.DB.Preload("Passenger").
		Where("trip_id = ?", trip.ID).
		Order("created_at desc").
		Find(&feedbacks)

	c.JSON(http.StatusOK, gin.H{"count": len(feedbacks), "feedback": feedbacks})
}
