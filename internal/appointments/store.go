// Package appointments keeps the appointment collection of one browser
// session in memory and mirrors every change through the backend.
package appointments

import (
	"context"
	"slices"
	"sync"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

const loadFailedMessage = "Unable to load appointments"

// Backend is the part of the REST client the store depends on.
type Backend interface {
	ListAppointments(ctx context.Context, status string) ([]backend.Appointment, error)
	CreateAppointment(ctx context.Context, in backend.CreateAppointmentInput) (*backend.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status string) (*backend.StatusUpdate, error)
}

type Metrics struct {
	Total     int
	Upcoming  int
	Completed int
}

type Snapshot struct {
	Appointments []backend.Appointment
	Loaded       bool
	Error        string
}

type Store struct {
	api Backend

	mu     sync.RWMutex
	items  []backend.Appointment
	loaded bool
	err    string
}

func NewStore(api Backend) *Store {
	return &Store{api: api}
}

// FetchAll replaces the collection with the backend's list. On failure the
// previous collection is kept and the error message is recorded.
func (s *Store) FetchAll(ctx context.Context) error {
	items, err := s.api.ListAppointments(ctx, "")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	if err != nil {
		s.err = backend.Message(err, loadFailedMessage)
		return err
	}

	s.items = items
	s.err = ""
	return nil
}

// EnsureLoaded fetches once per store; later calls are no-ops.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.FetchAll(ctx)
}

// Create books an appointment and prepends it to the collection.
func (s *Store) Create(ctx context.Context, in backend.CreateAppointmentInput) (*backend.Appointment, error) {
	ap, err := s.api.CreateAppointment(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]backend.Appointment{*ap}, s.items...)
	s.mu.Unlock()

	return ap, nil
}

// UpdateStatus changes an appointment's status and reports whether the
// backend sent a notification. A known appointment already in the requested
// status is left alone.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	status = NormalizeStatus(status)
	if !IsValidStatus(status) {
		return false, ErrUnsupportedStatus
	}

	s.mu.RLock()
	idx := s.indexOf(id)
	unchanged := idx >= 0 && s.items[idx].Status == status
	s.mu.RUnlock()

	if unchanged {
		return false, nil
	}

	res, err := s.api.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return false, err
	}

	if res.Appointment != nil {
		s.mu.Lock()
		if i := s.indexOf(res.Appointment.ID); i >= 0 {
			s.items[i] = *res.Appointment
		}
		s.mu.Unlock()
	}

	return res.NotificationSent, nil
}

func (s *Store) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := Metrics{Total: len(s.items)}
	for _, ap := range s.items {
		switch ap.Status {
		case StatusPending, StatusConfirmed:
			m.Upcoming++
		case StatusCompleted:
			m.Completed++
		}
	}
	return m
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Appointments: slices.Clone(s.items),
		Loaded:       s.loaded,
		Error:        s.err,
	}
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(ap backend.Appointment) bool {
		return ap.ID == id
	})
}
