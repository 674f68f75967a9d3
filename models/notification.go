package models

import "time"

// EmailStatus is the delivery outcome of the email attempt tied to a
// notification. A notification without a trip reference never attempts
// an email and always reports not_sent.
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailNotSent EmailStatus = "not_sent"
	EmailFailed  EmailStatus = "failed"
)

type Notification struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	RecipientID uint        `json:"recipient_id" gorm:"not null;index"`
	Recipient   *User       `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	SenderID    uint        `json:"sender_id" gorm:"not null;index"`
	Sender      *User       `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	TripID      *uint       `json:"trip_id,omitempty"`
	Trip        *Trip       `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	Message     string      `json:"message" gorm:"not null"`
	IsRead      bool        `json:"is_read" gorm:"default:false"`
	EmailStatus EmailStatus `json:"email_status" gorm:"not null;default:'not_sent'"`
	CreatedAt   time.Time   `json:"created_at"`
}
