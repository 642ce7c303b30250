package appointments

import (
	"testing"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

func sample() []backend.Appointment {
	return []backend.Appointment{
		{ID: 1, Status: StatusPending, Garage: backend.GarageRef{ID: 10, Name: "Speedy Motors"}, Customer: backend.CustomerRef{Name: "Asha", Email: "asha@example.com"}},
		{ID: 2, Status: StatusConfirmed, Garage: backend.GarageRef{ID: 11, Name: "Torque Hub"}, Customer: backend.CustomerRef{Name: "Ravi", Email: "ravi@example.com"}},
		{ID: 3, Status: StatusCompleted, Garage: backend.GarageRef{ID: 10, Name: "Speedy Motors"}, Customer: backend.CustomerRef{Name: "Meera", Email: "meera@mail.test"}},
		{ID: 4, Status: StatusCancelled, Garage: backend.GarageRef{Name: "Roadside"}, Customer: backend.CustomerRef{Name: "Kiran"}},
		{ID: 5, Status: StatusPending},
	}
}

func ids(list []backend.Appointment) []int64 {
	out := make([]int64, 0, len(list))
	for _, ap := range list {
		out = append(out, ap.ID)
	}
	return out
}

func TestFilterByQueryAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		status string
		want   []int64
	}{
		{"all", "", StatusAll, []int64{1, 2, 3, 4, 5}},
		{"empty status means all", "", "", []int64{1, 2, 3, 4, 5}},
		{"garage name", "speedy", StatusAll, []int64{1, 3}},
		{"customer email", "MAIL.TEST", StatusAll, []int64{3}},
		{"customer name", "ravi", "all", []int64{2}},
		{"status only", "", "pending", []int64{1, 5}},
		{"query and status", "speedy", StatusCompleted, []int64{3}},
		{"no match", "zzz", StatusAll, []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(sample(), tc.query, tc.status))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestGroupByGarage(t *testing.T) {
	groups := GroupByGarage(sample())

	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	wantKeys := []string{"10", "11", "Roadside", "garage-5"}
	for i, g := range groups {
		if g.Key != wantKeys[i] {
			t.Fatalf("group %d: expected key %q, got %q", i, wantKeys[i], g.Key)
		}
	}

	if got := ids(groups[0].Appointments); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected first group %v", got)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !IsValidStatus(NormalizeStatus(" confirmed ")) {
		t.Fatal("expected normalized status to be valid")
	}
	if IsValidStatus(StatusAll) {
		t.Fatal("ALL is a filter, not a status")
	}
	if StatusLabel(StatusCancelled) != "Cancelled" {
		t.Fatalf("unexpected label %q", StatusLabel(StatusCancelled))
	}
}
