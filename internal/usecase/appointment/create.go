package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor Actor

	GarageID   uint
	CustomerID uint

	ServiceType     string
	TimeSlot        string
	AppointmentDate string
	Notes           string
	ContactPhone    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    Auditor
	timezone string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit Auditor,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.TimeSlot = strings.TrimSpace(in.TimeSlot)
	if in.ServiceType == "" || in.TimeSlot == "" {
		return nil, httperr.ErrBusiness("missing_booking_details")
	}

	// --------------------------------------------------
	// Date
	// --------------------------------------------------
	date, err := timezone.ParseDate(uc.timezone, strings.TrimSpace(in.AppointmentDate))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_appointment_date")
	}

	// --------------------------------------------------
	// Customers book for themselves
	// --------------------------------------------------
	if in.Actor.IsCustomer() {
		if in.CustomerID == 0 {
			in.CustomerID = in.Actor.UserID
		}
		if in.CustomerID != in.Actor.UserID {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	// --------------------------------------------------
	// Garage
	// --------------------------------------------------
	garage, err := uc.repo.GetGarageByID(ctx, in.GarageID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !garage.Approved) {
		return nil, httperr.ErrBusiness("garage_not_found")
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	customer, err := uc.repo.GetCustomerByID(ctx, in.CustomerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("customer_not_found")
	}
	if err != nil {
		return nil, err
	}

	contact := strings.TrimSpace(in.ContactPhone)
	if contact == "" {
		contact = customer.Phone()
	}

	ap := &models.Appointment{
		GarageID:        garage.ID,
		CustomerID:      customer.ID,
		ServiceType:     in.ServiceType,
		TimeSlot:        in.TimeSlot,
		AppointmentDate: date,
		ContactPhone:    contact,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Garage = *garage
	ap.Customer = *customer

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		GarageID: &garage.ID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"date": date.Format(timezone.DateLayout),
			"slot": ap.TimeSlot,
		},
	})

	return ap, nil
}
