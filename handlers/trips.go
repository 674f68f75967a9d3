package handlers

import (
	"net/http"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/lifecycle"
	"covoiturage-api/middleware"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TripRequestBody struct {
	DepartureCity  string     `json:"departure_city" binding:"required"`
	Destination    string     `json:"destination" binding:"required"`
	DateTime       time.Time  `json:"date_time" binding:"required"`
	ReturnDate     *time.Time `json:"return_date"`
	AvailableSeats int        `json:"available_seats" binding:"required,min=1"`
	Price          *float64   `json:"price" binding:"required,gte=0"`
	CarType        string     `json:"car_type"`
	Description    string     `json:"description"`
	GenderPref     string     `json:"gender_pref"`
}

// ListTrips returns bookable trips (public)
func ListTrips(c *gin.Context) {
	var trips []models.Trip
	query := config.DB.Preload("Driver").
		Where("available_seats > 0 AND status = ?", models.StatusPlanned)

	if departure := c.Query("departure"); departure != "" {
		query = query.Where("departure_city LIKE ?", "%"+departure+"%")
	}
	if destination := c.Query("destination"); destination != "" {
		query = query.Where("destination LIKE ?", "%"+destination+"%")
	}
	if date := c.Query("date"); date != "" {
		if day, err := time.Parse("2006-01-02", date); err == nil {
			query = query.Where("date_time >= ? AND date_time < ?", day, day.AddDate(0, 0, 1))
		}
	}

	query.Order("date_time asc").Find(&trips)
	c.JSON(http.StatusOK, gin.H{"count": len(trips), "trips": trips})
}

// GetTrip returns a single trip with driver, bookings and feedback
func GetTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.Preload("Driver").Preload("Bookings").Preload("Feedbacks").
		First(&trip, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// CreateTrip posts a new trip (driver only). The departure time must
// be strictly in the future.
func CreateTrip(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var req TripRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.DateTime.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip date must be in the future"})
		return
	}

	trip := models.Trip{
		DriverID:       driverID,
		DepartureCity:  req.DepartureCity,
		Destination:    req.Destination,
		DateTime:       req.DateTime,
		ReturnDate:     req.ReturnDate,
		AvailableSeats: req.AvailableSeats,
		Price:          *req.Price,
		CarType:        req.CarType,
		Description:    req.Description,
		GenderPref:     req.GenderPref,
		Status:         models.StatusPlanned,
	}
	if err := config.DB.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Trip created", "trip": trip})
}

// GetMyTrips returns all trips posted by the logged-in driver
func GetMyTrips(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var trips []models.Trip
	config.DB.Preload("Bookings.Passenger").
		Where("driver_id = ?", driverID).
		Order("date_time desc").
		Find(&trips)
	c.JSON(http.StatusOK, gin.H{"count": len(trips), "trips": trips})
}

// UpdateTrip edits a trip (owning driver only)
func UpdateTrip(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var trip models.Trip
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driverID).
		First(&trip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not authorized"})
		return
	}

	var req TripRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.DateTime.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip date must be in the future"})
		return
	}

	config.DB.Model(&trip).Updates(map[string]interface{}{
		"departure_city":  req.DepartureCity,
		"destination":     req.Destination,
		"date_time":       req.DateTime,
		"return_date":     req.ReturnDate,
		"available_seats": req.AvailableSeats,
		"price":           *req.Price,
		"car_type":        req.CarType,
		"description":     req.Description,
		"gender_pref":     req.GenderPref,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Trip updated", "trip": trip})
}

// DeleteTrip removes a trip and its dependent rows (owning driver)
func DeleteTrip(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var trip models.Trip
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driverID).
		First(&trip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not authorized"})
		return
	}

	if err := deleteTripCascade(trip.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// deleteTripCascade drops a trip with its bookings, feedback and
// notifications, and unlinks matched trip requests, in one transaction.
// Deleting a trip with live bookings is allowed; there is no
// compensation flow beyond removing the rows.
func deleteTripCascade(tripID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		return deleteTripCascadeTx(tx, tripID)
	})
}

// deleteTripCascadeTx is the transaction body; user deletion runs it
// per owned trip inside its own transaction
func deleteTripCascadeTx(tx *gorm.DB, tripID uint) error {
	if err := tx.Where("trip_id = ?", tripID).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	if err := tx.Where("trip_id = ?", tripID).Delete(&models.Feedback{}).Error; err != nil {
		return err
	}
	if err := tx.Where("trip_id = ?", tripID).Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.TripRequest{}).Where("trip_id = ?", tripID).
		Updates(map[string]interface{}{"trip_id": nil, "status": models.RequestPending}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Trip{}, tripID).Error
}

// StartTrip moves a planned trip to in_progress (owning driver)
func StartTrip(c *gin.Context) {
	transitionTrip(c, models.StatusInProgress, lifecycle.ActorDriver)
}

// CancelTrip cancels a trip (owning driver)
func CancelTrip(c *gin.Context) {
	transitionTrip(c, models.StatusCancelled, lifecycle.ActorDriver)
}

// CompleteTrip closes out an in-progress trip early (owning driver);
// otherwise the sweeper completes it once the date passes
func CompleteTrip(c *gin.Context) {
	transitionTrip(c, models.StatusCompleted, lifecycle.ActorDriver)
}

func transitionTrip(c *gin.Context, to models.TripStatus, actor string) {
	driverID := middleware.GetUserID(c)

	var trip models.Trip
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driverID).
		First(&trip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not authorized"})
		return
	}

	applyTransition(c, &trip, to, actor)
}

func applyTransition(c *gin.Context, trip *models.Trip, to models.TripStatus, actor string) {
	if err := lifecycle.CanTransition(trip.Status, to, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    trip.Status,
			"reason":            err.Error(),
			"valid_next_states": lifecycle.ValidTransitionsFrom(trip.Status),
		})
		return
	}

	prev := trip.Status
	config.DB.Model(trip).Update("status", to)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Trip status updated",
		"trip_id":         trip.ID,
		"previous_status": prev,
		"new_status":      to,
	})
}

// GetLifecycleInfo returns the trip state machine for informational purposes
func GetLifecycleInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range lifecycle.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.TripStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Covoiturage Trip Lifecycle State Machine",
	})
}
