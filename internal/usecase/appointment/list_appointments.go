package appointment

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/timefmt"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
)

type ListAppointmentsInput struct {
	Actor Actor
	// Status is optional; "" and "ALL" list every status.
	Status string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute scopes the listing to the caller: admins see everything, owners
// their garage, customers their own bookings. Results are ordered by date
// and then by slot time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	var filter domain.ListFilter

	if s := strings.TrimSpace(in.Status); s != "" && !strings.EqualFold(s, "ALL") {
		st, err := domain.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	switch {
	case in.Actor.IsAdmin():
	case in.Actor.IsOwner():
		garage, err := uc.repo.GetGarageByOwner(ctx, in.Actor.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return []models.Appointment{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.GarageID = &garage.ID
	default:
		id := in.Actor.UserID
		filter.CustomerID = &id
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	SortBySchedule(apps)
	return apps, nil
}

// SortBySchedule orders by calendar date, then slot time, then ID.
// Slots that cannot be parsed sort first within their day.
func SortBySchedule(apps []models.Appointment) {
	keys := make(map[uint]time.Time, len(apps))
	for _, ap := range apps {
		date := ap.AppointmentDate.Format(timezone.DateLayout)
		at, ok := timefmt.SlotToDate(date, ap.TimeSlot, time.UTC)
		if !ok {
			at, _ = time.ParseInLocation(timezone.DateLayout, date, time.UTC)
		}
		keys[ap.ID] = at
	}

	sort.SliceStable(apps, func(i, j int) bool {
		ki, kj := keys[apps[i].ID], keys[apps[j].ID]
		if !ki.Equal(kj) {
			return ki.Before(kj)
		}
		return apps[i].ID < apps[j].ID
	})
}
