package models

import "time"

// BookingStatus mirrors the check constraint on the bookings table
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	TripID      uint          `json:"trip_id" gorm:"not null;index"`
	Trip        *Trip         `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	PassengerID uint          `json:"passenger_id" gorm:"not null;index"`
	Passenger   *User         `json:"passenger,omitempty" gorm:"foreignKey:PassengerID"`
	Seats       int           `json:"seats" gorm:"not null;default:1"`
	Status      BookingStatus `json:"status" gorm:"not null;default:'confirmed'"`
	CreatedAt   time.Time     `json:"created_at"`
}
