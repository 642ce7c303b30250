package appointments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

// Filter keeps appointments whose garage name, customer name or customer
// email contains query (case-insensitive) and whose status matches.
func Filter(list []backend.Appointment, query, status string) []backend.Appointment {
	q := strings.ToLower(strings.TrimSpace(query))
	status = NormalizeStatus(status)
	if status == "" {
		status = StatusAll
	}

	out := make([]backend.Appointment, 0, len(list))
	for _, ap := range list {
		if status != StatusAll && ap.Status != status {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(strings.Join([]string{
				ap.Garage.Name,
				ap.Customer.Name,
				ap.Customer.Email,
			}, " "))
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, ap)
	}
	return out
}

type Group struct {
	Key          string
	GarageName   string
	Address      string
	Appointments []backend.Appointment
}

// GroupByGarage groups in first-seen order.
func GroupByGarage(list []backend.Appointment) []Group {
	var groups []Group
	index := map[string]int{}

	for _, ap := range list {
		key := groupKey(ap)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:        key,
				GarageName: ap.Garage.Name,
				Address:    ap.Garage.Address,
			})
		}
		groups[i].Appointments = append(groups[i].Appointments, ap)
	}
	return groups
}

func groupKey(ap backend.Appointment) string {
	switch {
	case ap.Garage.ID != 0:
		return strconv.FormatInt(ap.Garage.ID, 10)
	case ap.Garage.Name != "":
		return ap.Garage.Name
	default:
		return fmt.Sprintf("garage-%d", ap.ID)
	}
}
