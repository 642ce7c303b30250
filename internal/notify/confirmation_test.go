package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

type fakeSender struct {
	to, subject, body string
	calls             int
	err               error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.calls++
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

func confirmedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              3,
		ServiceType:     "Oil Change",
		TimeSlot:        "09:00 AM",
		AppointmentDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Customer:        models.User{Name: "Ravi", Email: "ravi@example.com"},
		Garage:          models.Garage{GarageName: "Speedy Motors"},
	}
}

func TestConfirmationBody(t *testing.T) {
	body := ConfirmationBody(confirmedAppointment())

	for _, want := range []string{
		"Hi Ravi,",
		"appointment with Speedy Motors has been confirmed.",
		"• Service: Oil Change",
		"• Schedule: Wednesday, Jan 10 at 09:00 AM",
		"• Notes: N/A",
		"Team PitStop Servix",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestConfirmationBodyDefaults(t *testing.T) {
	body := ConfirmationBody(&models.Appointment{})

	for _, want := range []string{
		"Hi Customer,",
		"with your selected garage has",
		"• Service: General Service",
		"• Schedule: your scheduled date",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestSendConfirmation(t *testing.T) {
	sender := &fakeSender{}
	n := NewConfirmer(sender, nil)

	if !n.SendConfirmation(context.Background(), confirmedAppointment()) {
		t.Fatal("expected the email to be sent")
	}
	if sender.to != "ravi@example.com" || sender.subject != ConfirmationSubject {
		t.Fatalf("unexpected envelope: %+v", sender)
	}

	sender.err = errors.New("relay down")
	if n.SendConfirmation(context.Background(), confirmedAppointment()) {
		t.Fatal("a failed send must report false")
	}

	ap := confirmedAppointment()
	ap.Customer.Email = ""
	calls := sender.calls
	if n.SendConfirmation(context.Background(), ap) || sender.calls != calls {
		t.Fatal("missing email must skip sending")
	}
}

func TestBuildMessageUsesCRLF(t *testing.T) {
	msg := buildMessage("a@b.c", "d@e.f", "Hi", "one\ntwo")
	if !strings.Contains(msg, "Subject: Hi\r\n") || !strings.Contains(msg, "one\r\ntwo") {
		t.Fatalf("unexpected message %q", msg)
	}
}
