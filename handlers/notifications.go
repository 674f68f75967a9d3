package handlers

import (
	"net/http"
	"strings"

	"covoiturage-api/config"
	"covoiturage-api/middleware"
	"covoiturage-api/models"
	"covoiturage-api/notify"

	"github.com/gin-gonic/gin"
)

type SendNotificationRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
	TripID      *uint  `json:"trip_id"`
}

// SendNotification lets a driver message a passenger (driver only).
// The record is created unconditionally; an email is attempted only
// when a trip is attached, and its outcome is reported as exactly one
// of sent, not_sent or failed.
func SendNotification(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
		return
	}

	var recipient models.User
	if err := config.DB.First(&recipient, req.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	if req.TripID != nil {
		var trip models.Trip
		if err := config.DB.Where("id = ? AND driver_id = ?", *req.TripID, driverID).
			First(&trip).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or not owned by you"})
			return
		}
	}

	note := models.Notification{
		RecipientID: recipient.ID,
		SenderID:    driverID,
		TripID:      req.TripID,
		Message:     req.Message,
	}
	if err := notify.Dispatch(config.DB, Mail, &note, &recipient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Notification created and email processed",
		"notification_id": note.ID,
		"email_status":    note.EmailStatus,
	})
}

// ListNotifications returns the caller's notifications. Admin sees
// everything; everyone else sees what they sent or received.
func ListNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var notifications []models.Notification
	query := config.DB.Preload("Trip").Preload("Sender").Preload("Recipient")
	if role != models.RoleAdmin {
		query = query.Where("recipient_id = ? OR sender_id = ?", userID, userID)
	}
	query.Order("created_at desc").Find(&notifications)

	c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
}

// MarkNotificationRead flags a received notification as read
func MarkNotificationRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var note models.Notification
	if err := config.DB.Where("id = ? AND recipient_id = ?", c.Param("id"), userID).
		First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	config.DB.Model(&note).Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "notification_id": note.ID})
}
