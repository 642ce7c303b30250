package appointments

import (
	"strings"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"

	// StatusAll is the filter value matching every status.
	StatusAll = "ALL"
)

// Statuses in display order.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

var statusLabels = map[string]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// ErrUnsupportedStatus is returned before any request is made.
var ErrUnsupportedStatus error = &backend.Error{
	Kind:    backend.KindValidation,
	Message: "Unsupported appointment status",
}

func IsValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func StatusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}
