package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

const ConfirmationSubject = "Your PitStop Servix appointment is confirmed"

const confirmationBody = `Hi %s,

Great news! Your PitStop Servix appointment with %s has been confirmed.

• Service: %s
• Schedule: %s
• Notes: %s

Need to reschedule? Reply to this email or reach out from the app anytime.

See you soon,
Team PitStop Servix
`

// Confirmer emails customers when their appointment is confirmed.
type Confirmer struct {
	sender Sender
	log    *zap.Logger
}

func NewConfirmer(sender Sender, log *zap.Logger) *Confirmer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Confirmer{sender: sender, log: log}
}

// SendConfirmation reports whether the email went out. Failures are logged,
// not returned.
func (n *Confirmer) SendConfirmation(ctx context.Context, ap *models.Appointment) bool {
	to := strings.TrimSpace(ap.Customer.Email)
	if to == "" {
		n.log.Warn("skipping confirmation email, customer email missing", zap.Uint("appointment_id", ap.ID))
		return false
	}

	if err := n.sender.Send(ctx, to, ConfirmationSubject, ConfirmationBody(ap)); err != nil {
		n.log.Error("confirmation email failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		return false
	}
	return true
}

func ConfirmationBody(ap *models.Appointment) string {
	schedule := "your scheduled date"
	if !ap.AppointmentDate.IsZero() {
		schedule = ap.AppointmentDate.Format("Monday, Jan 2")
	}
	if ap.TimeSlot != "" {
		schedule += " at " + ap.TimeSlot
	}

	return fmt.Sprintf(confirmationBody,
		orDefault(ap.Customer.Name, "Customer"),
		orDefault(ap.Garage.GarageName, "your selected garage"),
		orDefault(ap.ServiceType, "General Service"),
		schedule,
		orDefault(ap.Notes, "N/A"),
	)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
