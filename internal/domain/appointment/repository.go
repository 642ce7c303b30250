package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

// ErrNotFound is returned by repositories for missing records.
var ErrNotFound = errors.New("record not found")

// ListFilter scopes a listing; nil fields are not applied.
type ListFilter struct {
	GarageID   *uint
	CustomerID *uint
	Status     *Status
}

type Repository interface {
	// -------- Garage --------
	GetGarageByID(
		ctx context.Context,
		id uint,
	) (*models.Garage, error)

	GetGarageByOwner(
		ctx context.Context,
		ownerID uint,
	) (*models.Garage, error)

	// -------- Customer --------
	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}
