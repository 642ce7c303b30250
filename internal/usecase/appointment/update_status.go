package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
)

type UpdateStatusInput struct {
	Actor         Actor
	AppointmentID uint
	Status        string
}

type UpdateStatusResult struct {
	Appointment      *models.Appointment
	NotificationSent bool
}

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
	timezone string
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
	tz string,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*UpdateStatusResult, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	if !uc.canManage(in.Actor, ap) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	from := ap.Status
	now := timezone.NowIn(uc.timezone)

	changed, err := domain.Transition(ap, to, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &UpdateStatusResult{Appointment: ap}, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		GarageID: &ap.GarageID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	// --------------------------------------------------
	// Confirmation email
	// --------------------------------------------------
	sent := false
	if to == domain.StatusConfirmed && uc.notifier != nil {
		sent = uc.notifier.SendConfirmation(ctx, ap)
	}
	if sent {
		domain.MarkNotified(ap, timezone.NowIn(uc.timezone))
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	return &UpdateStatusResult{Appointment: ap, NotificationSent: sent}, nil
}

func (uc *UpdateAppointmentStatus) canManage(actor Actor, ap *models.Appointment) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsOwner():
		return ap.Garage.OwnerID == actor.UserID
	default:
		return false
	}
}
