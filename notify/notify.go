package notify

import (
	"fmt"

	"covoiturage-api/logger"
	"covoiturage-api/mailer"
	"covoiturage-api/models"

	"gorm.io/gorm"
)

var log = logger.New("notify")

// Dispatch persists the notification, then attempts an email only when
// a trip is attached. The two steps are deliberately decoupled: the
// record stands whatever the email outcome, and the caller gets the
// tri-state result back on the saved row.
//
//	trip attached + delivery ok     -> sent
//	trip attached + transport error -> failed
//	no trip attached                -> not_sent (no attempt made)
func Dispatch(db *gorm.DB, m mailer.Mailer, note *models.Notification, recipient *models.User) error {
	note.EmailStatus = models.EmailNotSent
	if err := db.Create(note).Error; err != nil {
		return err
	}

	if note.TripID == nil {
		log.Info("notification stored without trip, no email attempted",
			logger.Uint("notification_id", note.ID))
		return nil
	}

	var trip models.Trip
	if err := db.First(&trip, *note.TripID).Error; err != nil {
		// Trip vanished between validation and dispatch; keep the record
		note.EmailStatus = models.EmailFailed
		db.Model(note).Update("email_status", note.EmailStatus)
		log.Error("trip lookup failed during dispatch", logger.Error(err),
			logger.Uint("notification_id", note.ID))
		return nil
	}

	subject, body := composeEmail(&trip, note.Message)
	if err := m.Send(recipient.Email, subject, body); err != nil {
		note.EmailStatus = models.EmailFailed
		log.Error("email delivery failed", logger.Error(err),
			logger.Uint("notification_id", note.ID),
			logger.String("recipient", recipient.Email))
	} else {
		note.EmailStatus = models.EmailSent
		log.Info("email delivered",
			logger.Uint("notification_id", note.ID),
			logger.String("recipient", recipient.Email))
	}

	return db.Model(note).Update("email_status", note.EmailStatus).Error
}

func composeEmail(trip *models.Trip, message string) (subject, body string) {
	subject = "New notification from Covoiturage"
	body = fmt.Sprintf(`Hello,

You have a new message on Covoiturage:

%s

Trip details:
- Route: %s to %s
- Date and time: %s
- Price per seat: %.2f

Best regards,
The Covoiturage Team
`,
		message,
		trip.DepartureCity, trip.Destination,
		trip.DateTime.Format("2006-01-02 15:04"),
		trip.Price)
	return subject, body
}

// BookingMessage is the canonical text stored on the notification a
// driver receives when a passenger books seats on their trip.
func BookingMessage(passengerEmail string, seats int, trip *models.Trip) string {
	return fmt.Sprintf("%s booked %d seat(s) on your trip %s to %s (%s)",
		passengerEmail, seats, trip.DepartureCity, trip.Destination,
		trip.DateTime.Format("2006-01-02 15:04"))
}
