package appointment

import (
	"context"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsOwner() bool {
	return a.Role == models.RoleGarageOwner
}

func (a Actor) IsCustomer() bool {
	return a.Role == models.RoleCustomer
}

type Notifier interface {
	SendConfirmation(ctx context.Context, ap *models.Appointment) bool
}

type Auditor interface {
	Dispatch(ev audit.Event)
}
