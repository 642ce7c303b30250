package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" confirmed ")
	if err != nil || st != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %q (%v)", st, err)
	}

	if _, err := ParseStatus("ARCHIVED"); !httperr.IsBusiness(err, "unsupported_status") {
		t.Fatalf("expected unsupported_status, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, true},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if (err == nil) != tc.ok {
			t.Fatalf("%s -> %s: expected ok=%v, got %v", tc.from, tc.to, tc.ok, err)
		}
	}
}

func TestTransitionStampsTimes(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}
	changed, err := Transition(ap, StatusCancelled, now)
	if err != nil || !changed {
		t.Fatalf("expected change, got changed=%v err=%v", changed, err)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatal("expected CancelledAt to be set")
	}

	changed, err = Transition(ap, StatusPending, now)
	if err != nil || !changed || ap.CancelledAt != nil {
		t.Fatalf("reopening must clear CancelledAt, got %+v (%v)", ap, err)
	}

	changed, err = Transition(ap, StatusPending, now)
	if err != nil || changed {
		t.Fatalf("same status must be a no-op, got changed=%v err=%v", changed, err)
	}

	ap.Status = string(StatusCompleted)
	if _, err := Transition(ap, StatusPending, now); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}
