package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"covoiturage-api/config"
	"covoiturage-api/middleware"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedPhotoExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// savePhoto stores the uploaded file under UploadDir/<subdir>/ with a
// random name and returns the stored filename
func savePhoto(c *gin.Context, subdir string) (string, bool) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required (multipart field 'photo')"})
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo must be a .jpg, .jpeg or .png file"})
		return "", false
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(config.UploadDir, subdir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return "", false
	}
	return name, true
}

// UploadProfilePhoto sets the caller's profile photo
func UploadProfilePhoto(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	name, ok := savePhoto(c, "users")
	if !ok {
		return
	}
	config.DB.Model(&user).Update("photo_path", name)
	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded", "photo_path": name})
}

// GetUserPhoto serves a user's profile photo. Visible to the user
// themselves, admins, and drivers reviewing a pending trip request
// from that user.
func GetUserPhoto(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.ID != callerID && role != models.RoleAdmin {
		if role != models.RoleDriver {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this photo"})
			return
		}
		var pending models.TripRequest
		if err := config.DB.Where("passenger_id = ? AND trip_id IS NULL AND status = ?",
			user.ID, models.RequestPending).First(&pending).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this photo"})
			return
		}
	}

	if user.PhotoPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.File(filepath.Join(config.UploadDir, "users", user.PhotoPath))
}

// UploadTripPhoto sets a photo on one of the driver's own trips
func UploadTripPhoto(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var trip models.Trip
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driverID).
		First(&trip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not authorized"})
		return
	}

	name, ok := savePhoto(c, "trips")
	if !ok {
		return
	}
	config.DB.Model(&trip).Update("photo_path", name)
	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded", "photo_path": name})
}

// GetTripPhoto serves a trip's photo (public, like the trip listing)
func GetTripPhoto(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if trip.PhotoPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.File(filepath.Join(config.UploadDir, "trips", trip.PhotoPath))
}
