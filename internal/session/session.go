// Package session keeps per-browser state on the server: the backend token,
// the signed-in user, the capabilities decided at login and a one-shot flash
// message. The browser only holds a signed cookie naming the session.
package session

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/guard"
)

var ErrNotFound = errors.New("session not found")

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Session struct {
	ID           string             `json:"id"`
	Token        string             `json:"token,omitempty"`
	User         *backend.User      `json:"user,omitempty"`
	Capabilities guard.Capabilities `json:"capabilities"`
	Flash        *Flash             `json:"flash,omitempty"`

	persisted bool
}

func (s *Session) SignedIn() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// UserID is zero for anonymous sessions.
func (s *Session) UserID() int64 {
	if s == nil || s.User == nil {
		return 0
	}
	return s.User.ID
}

// PopFlash returns the pending flash and clears it.
func (s *Session) PopFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
