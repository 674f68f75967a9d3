package lifecycle

import (
	"errors"
	"time"

	"covoiturage-api/models"

	"gorm.io/gorm"
)

// Actors that may trigger a trip status change
const (
	ActorDriver = "driver"
	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.TripStatus
	To    models.TripStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Driver starts the ride at departure time
	{From: models.StatusPlanned, To: models.StatusInProgress, Actor: ActorDriver},
	// Driver or admin can cancel a trip that has not completed
	{From: models.StatusPlanned, To: models.StatusCancelled, Actor: ActorDriver},
	{From: models.StatusInProgress, To: models.StatusCancelled, Actor: ActorDriver},
	{From: models.StatusPlanned, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusInProgress, To: models.StatusCancelled, Actor: ActorAdmin},
	// Driver closes out the ride, or the sweeper does once the date passes
	{From: models.StatusInProgress, To: models.StatusCompleted, Actor: ActorDriver},
	{From: models.StatusInProgress, To: models.StatusCompleted, Actor: ActorSystem},
	{From: models.StatusPlanned, To: models.StatusCompleted, Actor: ActorSystem},
}

type transitionKey struct {
	From  models.TripStatus
	To    models.TripStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.TripStatus) []models.TripStatus {
	var nexts []models.TripStatus
	seen := map[models.TripStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.TripStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.TripStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// Bookable reports whether a trip in this state still accepts bookings
func Bookable(status models.TripStatus) bool {
	return status == models.StatusPlanned || status == models.StatusInProgress
}

// CompleteExpired marks every planned or in-progress trip whose
// departure time has passed as completed. The feedback gate only ever
// reads the persisted status, so this sweep is what makes a trip
// eligible for feedback.
func CompleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&models.Trip{}).
		Where("status IN ? AND date_time < ?", []models.TripStatus{models.StatusPlanned, models.StatusInProgress}, now).
		Update("status", models.StatusCompleted)
	return res.RowsAffected, res.Error
}
