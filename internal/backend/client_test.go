package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 0, nil)
}

func TestListGaragesNormalizesShapes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/garages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[
			{"id": 1, "garageName": "Speedy", "garageAddress": "MG Road", "owner": {"name": "Ravi", "email": "ravi@example.com"}},
			{"id": "2", "name": "Torque", "address": "Indiranagar", "owner": "Meera", "rating": 4.2, "reviews": 18, "services": ["Tyres"]},
			{"id": 3}
		]`)
	})

	garages, err := c.ListGarages(context.Background())
	if err != nil {
		t.Fatalf("ListGarages failed: %v", err)
	}
	if len(garages) != 3 {
		t.Fatalf("expected 3 garages, got %d", len(garages))
	}

	if g := garages[0]; g.Name != "Speedy" || g.Address != "MG Road" || g.OwnerName != "Ravi" || g.OwnerEmail != "ravi@example.com" {
		t.Fatalf("unexpected first garage %+v", g)
	}
	if g := garages[1]; g.ID != 2 || g.Name != "Torque" || g.OwnerName != "Meera" || g.Rating != 4.2 || g.Reviews != 18 || len(g.Services) != 1 {
		t.Fatalf("unexpected second garage %+v", g)
	}
	g := garages[2]
	if g.Name != DefaultGarageName || g.Address != DefaultGarageLocation || g.OwnerName != DefaultOwnerName {
		t.Fatalf("expected defaults, got %+v", g)
	}
	if g.Rating != DefaultRating || g.Distance != DefaultDistance || g.ImageURL != DefaultGarageImage {
		t.Fatalf("expected display defaults, got %+v", g)
	}
}

func TestSearchGaragesEscapesTerm(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `[]`)
	})

	if _, err := c.SearchGarages(context.Background(), "a/b c"); err != nil {
		t.Fatalf("SearchGarages failed: %v", err)
	}
	if gotPath != "/api/garages/search/a%2Fb%20c" {
		t.Fatalf("unexpected escaped path %s", gotPath)
	}
}

func TestBackendMessageIsSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message": "Invalid appointmentDate. Use ISO format (yyyy-MM-dd)."}`)
	})

	_, err := c.CreateAppointment(context.Background(), CreateAppointmentInput{GarageID: 1, CustomerID: 2})
	if err == nil {
		t.Fatal("expected error")
	}

	var be *Error
	if !errors.As(err, &be) || be.Kind != KindBackend || be.Status != http.StatusBadRequest {
		t.Fatalf("expected backend error, got %#v", err)
	}
	if got := Message(err, "fallback"); got != "Invalid appointmentDate. Use ISO format (yyyy-MM-dd)." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestBackendErrorWithoutMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListAppointments(context.Background(), "")
	if got := Message(err, "Unable to load appointments"); got != "Unable to load appointments" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTransportErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL, 0, nil)
	_, err := c.ListGarages(context.Background())

	var be *Error
	if !errors.As(err, &be) || be.Kind != KindTransport {
		t.Fatalf("expected transport error, got %#v", err)
	}
	if got := Message(err, "Failed to fetch garages"); got != "Failed to fetch garages" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCreateAppointmentRequiresIDs(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CreateAppointment(context.Background(), CreateAppointmentInput{GarageID: 1})
	var be *Error
	if !errors.As(err, &be) || be.Kind != KindValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
	if called {
		t.Fatal("request must not be sent without customer id")
	}
}

func TestCreateAppointmentRejectsEmptyResponse(t *testing.T) {
	bodies := map[string]string{
		"empty body":   "",
		"empty object": "{}",
		"missing id":   `{"status":"PENDING","timeSlot":"09:00 AM"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, body)
			})

			ap, err := c.CreateAppointment(context.Background(), CreateAppointmentInput{GarageID: 1, CustomerID: 9})
			var be *Error
			if !errors.As(err, &be) || be.Kind != KindBackend {
				t.Fatalf("expected backend error, got %v %#v", ap, err)
			}
			if got := Message(err, "fallback"); got != "fallback" {
				t.Fatalf("expected the page fallback message, got %q", got)
			}
		})
	}
}

func TestUpdateStatusSendsTokenAndParsesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/appointments/42/status" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["status"] != "CONFIRMED" {
			t.Fatalf("unexpected body %v (%v)", body, err)
		}

		_, _ = io.WriteString(w, `{
			"appointment": {
				"id": 42, "status": "confirmed", "timeSlot": "02:30 PM", "appointmentDate": "2024-01-10",
				"garage": {"id": 7, "name": "Speedy"},
				"customer": {"id": 3, "name": "Asha", "email": "asha@example.com"},
				"notification": {"lastSentAt": "2024-01-09T10:15:00", "type": "CONFIRMED_EMAIL"}
			},
			"notificationSent": true
		}`)
	})

	res, err := c.WithToken("tok").UpdateAppointmentStatus(context.Background(), 42, "CONFIRMED")
	if err != nil {
		t.Fatalf("UpdateAppointmentStatus failed: %v", err)
	}
	if !res.NotificationSent || res.Appointment == nil {
		t.Fatalf("unexpected result %+v", res)
	}

	ap := res.Appointment
	if ap.Status != "CONFIRMED" || ap.Garage.ID != 7 || ap.Customer.Email != "asha@example.com" {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if ap.Notification == nil || ap.Notification.Type != "CONFIRMED_EMAIL" || ap.Notification.LastSentAt.Hour() != 10 {
		t.Fatalf("unexpected notification %+v", ap.Notification)
	}
}

func TestLoginNormalizesUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatal("anonymous client must not send a token")
		}
		_, _ = io.WriteString(w, `{
			"token": "jwt",
			"user": {
				"id": 5, "name": "Asha", "email": "asha@example.com", "role": "customer",
				"roles": [{"name": "CUSTOMER"}],
				"customerProfile": {"vehicleNumber": "KA01AB1234", "phone": "99999"}
			}
		}`)
	})

	res, err := c.Login(context.Background(), Credentials{Email: "asha@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Token != "jwt" || res.User == nil {
		t.Fatalf("unexpected auth result %+v", res)
	}
	if res.User.Phone() != "99999" || res.User.Profile.VehicleNumber != "KA01AB1234" {
		t.Fatalf("unexpected profile %+v", res.User.Profile)
	}
	if len(res.User.Roles) != 1 || res.User.Roles[0] != "CUSTOMER" {
		t.Fatalf("unexpected roles %v", res.User.Roles)
	}
}

func TestCancelledContextEndsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetGarage(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
