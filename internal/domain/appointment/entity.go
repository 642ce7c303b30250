package appointment

import (
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

const NotificationConfirmedEmail = "CONFIRMED_EMAIL"

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the given status and stamps the matching timestamp.
// It reports whether the status actually changed.
func Transition(ap *models.Appointment, to Status, now time.Time) (bool, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	ap.Status = string(to)

	switch to {
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusPending:
		ap.CancelledAt = nil
	}
	return true, nil
}

// MarkNotified records a sent confirmation email.
func MarkNotified(ap *models.Appointment, now time.Time) {
	ap.LastNotificationSentAt = &now
	ap.LastNotificationType = NotificationConfirmedEmail
}
