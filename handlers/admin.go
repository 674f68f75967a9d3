package handlers

import (
	"net/http"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/lifecycle"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminGetAllUsers returns all non-admin users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Where("role <> ?", models.RoleAdmin)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminDeleteUser removes a user and everything they own — admin only
func AdminDeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete admin user"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Trips owned by the user go through the same cascade as a
		// direct trip deletion, so matched requests get unlinked too
		var trips []models.Trip
		if err := tx.Where("driver_id = ?", user.ID).Find(&trips).Error; err != nil {
			return err
		}
		for _, trip := range trips {
			if err := deleteTripCascadeTx(tx, trip.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("passenger_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("passenger_id = ?", user.ID).Delete(&models.TripRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("passenger_id = ?", user.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ? OR sender_id = ?", user.ID, user.ID).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user_id": user.ID})
}

// AdminGetAllTrips returns every trip with driver and bookings — admin only
func AdminGetAllTrips(c *gin.Context) {
	var trips []models.Trip
	query := config.DB.Preload("Driver").Preload("Bookings")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&trips)
	c.JSON(http.StatusOK, gin.H{"count": len(trips), "trips": trips})
}

// AdminCancelTrip cancels any trip, planned or in progress — admin only
func AdminCancelTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	applyTransition(c, &trip, models.StatusCancelled, lifecycle.ActorAdmin)
}

// AdminDeleteTrip force-removes any trip — admin only
func AdminDeleteTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if err := deleteTripCascade(trip.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully", "trip_id": trip.ID})
}

// AdminGetStats returns dashboard counters — admin only
func AdminGetStats(c *gin.Context) {
	var totalUsers, totalTrips, totalBookings int64
	config.DB.Model(&models.User{}).Where("role <> ?", models.RoleAdmin).Count(&totalUsers)
	config.DB.Model(&models.Trip{}).Count(&totalTrips)
	config.DB.Model(&models.Booking{}).Count(&totalBookings)

	weekAgo := time.Now().AddDate(0, 0, -7)
	var newUsers, recentTrips int64
	config.DB.Model(&models.User{}).
		Where("created_at >= ? AND role <> ?", weekAgo, models.RoleAdmin).
		Count(&newUsers)
	config.DB.Model(&models.Trip{}).Where("created_at >= ?", weekAgo).Count(&recentTrips)

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_trips":       totalTrips,
		"total_bookings":    totalBookings,
		"new_users_week":    newUsers,
		"recent_trips_week": recentTrips,
	})
}
