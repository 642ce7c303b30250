package appointment

import (
	"strings"

	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions lists the statuses each status may move to.
// COMPLETED is terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusPending},
	StatusCancelled: {StatusPending},
	StatusCompleted: {},
}

// ParseStatus accepts any casing and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := allowedTransitions[st]; !ok {
		return "", httperr.ErrBusiness("unsupported_status")
	}
	return st, nil
}

// CanTransition allows staying in the same status.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func InitialStatus() Status {
	return StatusPending
}
