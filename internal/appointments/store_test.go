package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

type fakeBackend struct {
	mu sync.Mutex

	list      []backend.Appointment
	listErr   error
	created   *backend.Appointment
	createErr error
	update    *backend.StatusUpdate
	updateErr error

	listCalls   int
	updateCalls int
}

func (f *fakeBackend) ListAppointments(ctx context.Context, status string) ([]backend.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeBackend) CreateAppointment(ctx context.Context, in backend.CreateAppointmentInput) (*backend.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeBackend) UpdateAppointmentStatus(ctx context.Context, id int64, status string) (*backend.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.update, nil
}

func appt(id int64, status string) backend.Appointment {
	return backend.Appointment{ID: id, Status: status}
}

func TestMetrics(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{
		appt(1, StatusPending),
		appt(2, StatusConfirmed),
		appt(3, StatusCompleted),
		appt(4, StatusCancelled),
	}}
	s := NewStore(api)

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	m := s.Metrics()
	if m != (Metrics{Total: 4, Upcoming: 2, Completed: 1}) {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestFetchFailureKeepsCollection(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusPending)}}
	s := NewStore(api)

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	api.listErr = &backend.Error{Kind: backend.KindTransport, Err: errors.New("connection refused")}
	if err := s.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if len(snap.Appointments) != 1 {
		t.Fatalf("expected prior collection to survive, got %d items", len(snap.Appointments))
	}
	if snap.Error != "Unable to load appointments" {
		t.Fatalf("unexpected error message %q", snap.Error)
	}

	api.listErr = &backend.Error{Kind: backend.KindBackend, Status: 403, Message: "Forbidden"}
	_ = s.FetchAll(context.Background())
	if got := s.Snapshot().Error; got != "Forbidden" {
		t.Fatalf("expected backend message, got %q", got)
	}
}

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	api := &fakeBackend{}
	s := NewStore(api)

	for i := 0; i < 3; i++ {
		if err := s.EnsureLoaded(context.Background()); err != nil {
			t.Fatalf("EnsureLoaded failed: %v", err)
		}
	}
	if api.listCalls != 1 {
		t.Fatalf("expected one fetch, got %d", api.listCalls)
	}
}

func TestCreatePrepends(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusPending)}}
	s := NewStore(api)
	_ = s.FetchAll(context.Background())

	created := appt(2, StatusPending)
	api.created = &created

	ap, err := s.Create(context.Background(), backend.CreateAppointmentInput{GarageID: 1, CustomerID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ap.ID != 2 {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	items := s.Snapshot().Appointments
	if len(items) != 2 || items[0].ID != 2 || items[1].ID != 1 {
		t.Fatalf("expected new appointment first, got %+v", items)
	}
}

func TestCreateFailureLeavesCollection(t *testing.T) {
	api := &fakeBackend{createErr: &backend.Error{Kind: backend.KindBackend, Status: 404, Message: "Garage not found"}}
	s := NewStore(api)

	if _, err := s.Create(context.Background(), backend.CreateAppointmentInput{}); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Snapshot().Appointments) != 0 {
		t.Fatal("collection must stay empty")
	}
}

func TestUpdateStatusRejectsUnsupported(t *testing.T) {
	api := &fakeBackend{}
	s := NewStore(api)

	_, err := s.UpdateStatus(context.Background(), 1, "ARCHIVED")
	if !errors.Is(err, ErrUnsupportedStatus) {
		t.Fatalf("expected ErrUnsupportedStatus, got %v", err)
	}
	if api.updateCalls != 0 {
		t.Fatal("no request may be sent for an unsupported status")
	}
	if backend.Message(err, "fallback") != "Unsupported appointment status" {
		t.Fatalf("unexpected message %q", backend.Message(err, "fallback"))
	}
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusConfirmed)}}
	s := NewStore(api)
	_ = s.FetchAll(context.Background())

	sent, err := s.UpdateStatus(context.Background(), 1, "confirmed")
	if err != nil || sent {
		t.Fatalf("expected silent no-op, got sent=%v err=%v", sent, err)
	}
	if api.updateCalls != 0 {
		t.Fatal("no request may be sent for an unchanged status")
	}
}

func TestUpdateStatusReplacesRecord(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusPending), appt(2, StatusPending)}}
	s := NewStore(api)
	_ = s.FetchAll(context.Background())

	updated := appt(2, StatusConfirmed)
	api.update = &backend.StatusUpdate{Appointment: &updated, NotificationSent: true}

	sent, err := s.UpdateStatus(context.Background(), 2, StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !sent {
		t.Fatal("expected notificationSent")
	}

	items := s.Snapshot().Appointments
	if items[1].Status != StatusConfirmed || items[0].Status != StatusPending {
		t.Fatalf("unexpected collection %+v", items)
	}
	if m := s.Metrics(); m.Upcoming != 2 {
		t.Fatalf("metrics must follow the collection, got %+v", m)
	}
}

func TestUpdateStatusWithoutAppointmentInResponse(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusPending)}}
	s := NewStore(api)
	_ = s.FetchAll(context.Background())

	api.update = &backend.StatusUpdate{}

	if _, err := s.UpdateStatus(context.Background(), 1, StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got := s.Snapshot().Appointments[0].Status; got != StatusPending {
		t.Fatalf("collection must be unchanged, got %s", got)
	}
}

func TestUpdateStatusFailureLeavesRecord(t *testing.T) {
	api := &fakeBackend{list: []backend.Appointment{appt(1, StatusPending)}}
	s := NewStore(api)
	_ = s.FetchAll(context.Background())

	api.updateErr = &backend.Error{Kind: backend.KindBackend, Status: 400, Message: "Invalid transition"}
	if _, err := s.UpdateStatus(context.Background(), 1, StatusCompleted); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Snapshot().Appointments[0].Status; got != StatusPending {
		t.Fatalf("record must be unchanged, got %s", got)
	}
}

func TestRegistryKeepsOneStorePerSession(t *testing.T) {
	r, err := NewRegistry(2)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	newAPI := func() Backend { return &fakeBackend{} }

	a := r.Get("a", newAPI)
	if r.Get("a", newAPI) != a {
		t.Fatal("expected the same store for the same session")
	}
	if r.Get("b", newAPI) == a {
		t.Fatal("sessions must not share stores")
	}

	r.Get("c", newAPI)
	if r.Len() != 2 {
		t.Fatalf("expected eviction to cap registry at 2, got %d", r.Len())
	}

	r.Drop("c")
	if r.Len() != 1 {
		t.Fatalf("expected 1 store after drop, got %d", r.Len())
	}
}
