package handlers

import (
	"covoiturage-api/logger"
	"covoiturage-api/mailer"
)

// Mail is the transport used for notification emails. main wires the
// SMTP implementation; tests swap in a stub.
var Mail mailer.Mailer

var log = logger.New("handlers")
