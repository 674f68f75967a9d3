package handlers

import (
	"net/http"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/middleware"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
)

// matchWindow is how far a planned trip may deviate from the requested
// departure time and still count as a match
const matchWindow = 30 * time.Minute

type CreateTripRequestBody struct {
	DepartureCity string    `json:"departure_city" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	DateTime      time.Time `json:"date_time" binding:"required"`
	GenderPref    string    `json:"gender_pref"`
}

// CreateTripRequest posts a route/date wish (passenger only) and tries
// to match it against planned trips with free seats right away
func CreateTripRequest(c *gin.Context) {
	passengerID := middleware.GetUserID(c)

	var req CreateTripRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DateTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip request date cannot be in the past"})
		return
	}

	var matching models.Trip
	matched := config.DB.
		Where("departure_city = ? AND destination = ?", req.DepartureCity, req.Destination).
		Where("date_time >= ? AND date_time <= ?", req.DateTime.Add(-matchWindow), req.DateTime.Add(matchWindow)).
		Where("available_seats > 0 AND status = ?", models.StatusPlanned).
		First(&matching).Error == nil

	request := models.TripRequest{
		PassengerID:   passengerID,
		DepartureCity: req.DepartureCity,
		Destination:   req.Destination,
		DateTime:      req.DateTime,
		GenderPref:    req.GenderPref,
		Status:        models.RequestPending,
	}
	if matched {
		request.TripID = &matching.ID
		request.Status = models.RequestMatched
	}

	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Trip request created", "trip_request": request})
}

// GetMyTripRequests returns the passenger's future-dated requests
func GetMyTripRequests(c *gin.Context) {
	passengerID := middleware.GetUserID(c)
	var requests []models.TripRequest
	config.DB.Preload("Trip").
		Where("passenger_id = ? AND date_time >= ?", passengerID, time.Now()).
		Order("date_time asc").
		Find(&requests)
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "trip_requests": requests})
}

// GetOpenTripRequests returns pending unmatched requests for drivers.
// When both the driver and the request carry a gender preference, only
// compatible requests show up.
func GetOpenTripRequests(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var driver models.User
	if err := config.DB.First(&driver, driverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var requests []models.TripRequest
	config.DB.Preload("Passenger").
		Where("trip_id IS NULL AND status = ? AND date_time >= ?", models.RequestPending, time.Now()).
		Order("date_time asc").
		Find(&requests)

	if driver.Gender != "" {
		filtered := requests[:0]
		for _, r := range requests {
			if r.GenderPref == "" || r.GenderPref == driver.Gender {
				filtered = append(filtered, r)
			}
		}
		requests = filtered
	}

	c.JSON(http.StatusOK, gin.H{"count": len(requests), "trip_requests": requests})
}

// AdminGetAllTripRequests lists every trip request — admin only
func AdminGetAllTripRequests(c *gin.Context) {
	var requests []models.TripRequest
	config.DB.Preload("Passenger").Preload("Trip").
		Order("created_at desc").
		Find(&requests)
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "trip_requests": requests})
}
