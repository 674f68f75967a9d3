package models

import "time"

// Feedback is a passenger's post-trip rating. The unique index backs
// the one-feedback-per-(trip, passenger) rule even if two submissions
// race past the handler check.
type Feedback struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TripID      uint      `json:"trip_id" gorm:"not null;uniqueIndex:uniq_trip_passenger"`
	Trip        *Trip     `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	PassengerID uint      `json:"passenger_id" gorm:"not null;uniqueIndex:uniq_trip_passenger"`
	Passenger   *User     `json:"passenger,omitempty" gorm:"foreignKey:PassengerID"`
	BookingID   uint      `json:"booking_id" gorm:"not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	Comment     string    `json:"comment" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
