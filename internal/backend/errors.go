package backend

import (
	"errors"
	"fmt"
)

// errMissingAppointment marks a successful create response that carried no record.
var errMissingAppointment = errors.New("create response carried no appointment")

type Kind string

const (
	// KindTransport means the request never produced an HTTP response.
	KindTransport Kind = "transport"
	// KindBackend means the backend answered with an error status or an unreadable body.
	KindBackend Kind = "backend"
	// KindValidation means the request was refused before leaving the process.
	KindValidation Kind = "validation"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("backend %s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("backend %s: status %d", e.Kind, e.Status)
	default:
		return fmt.Sprintf("backend %s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the text a page should show for err: the backend's own
// message or a validation message when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var be *Error
	if !errors.As(err, &be) {
		return fallback
	}
	if be.Kind == KindTransport || be.Message == "" {
		return fallback
	}
	return be.Message
}

func IsStatus(err error, status int) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == status
}
