package models

import "time"

// TripStatus represents the lifecycle state of a posted trip
type TripStatus string

const (
	StatusPlanned    TripStatus = "planned"
	StatusInProgress TripStatus = "in_progress"
	StatusCompleted  TripStatus = "completed"
	StatusCancelled  TripStatus = "cancelled"
)

type Trip struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	DriverID       uint       `json:"driver_id" gorm:"not null;index"`
	Driver         *User      `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	DepartureCity  string     `json:"departure_city" gorm:"not null;index"`
	Destination    string     `json:"destination" gorm:"not null;index"`
	DateTime       time.Time  `json:"date_time" gorm:"not null"`
	ReturnDate     *time.Time `json:"return_date,omitempty"`
	AvailableSeats int        `json:"available_seats" gorm:"not null"`
	Price          float64    `json:"price" gorm:"not null"`
	CarType        string     `json:"car_type,omitempty"`
	Description    string     `json:"description,omitempty"`
	GenderPref     string     `json:"gender_pref,omitempty"`
	PhotoPath      string     `json:"photo_path,omitempty"`
	Status         TripStatus `json:"status" gorm:"not null;default:'planned'"`
	Bookings       []Booking  `json:"bookings,omitempty" gorm:"foreignKey:TripID"`
	Feedbacks      []Feedback `json:"feedbacks,omitempty" gorm:"foreignKey:TripID"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
