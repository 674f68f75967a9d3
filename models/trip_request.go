package models

import "time"

// TripRequestStatus tracks whether a request found a matching trip
type TripRequestStatus string

const (
	RequestPending TripRequestStatus = "pending"
	RequestMatched TripRequestStatus = "matched"
)

// TripRequest is a passenger-initiated wish for a route/date with no
// matching trip yet. Matching happens once, at creation time.
type TripRequest struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	PassengerID   uint              `json:"passenger_id" gorm:"not null;index"`
	Passenger     *User             `json:"passenger,omitempty" gorm:"foreignKey:PassengerID"`
	DepartureCity string            `json:"departure_city" gorm:"not null"`
	Destination   string            `json:"destination" gorm:"not null"`
	DateTime      time.Time         `json:"date_time" gorm:"not null"`
	GenderPref    string            `json:"gender_pref,omitempty"`
	Status        TripRequestStatus `json:"status" gorm:"not null;default:'pending'"`
	TripID        *uint             `json:"trip_id,omitempty"`
	Trip          *Trip             `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	CreatedAt     time.Time         `json:"created_at"`
}
