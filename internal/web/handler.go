// Package web serves the browser-facing booking pages.
package web

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/appointments"
	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/session"
)

type Handler struct {
	api        *backend.Client
	stores     *appointments.Registry
	sessions   *session.Manager
	ownerEmail string
	loc        *time.Location
	log        *zap.Logger
	now        func() time.Time
}

type Deps struct {
	API        *backend.Client
	Stores     *appointments.Registry
	Sessions   *session.Manager
	OwnerEmail string
	Location   *time.Location
	Logger     *zap.Logger
}

func NewHandler(d Deps) *Handler {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		api:        d.API,
		stores:     d.Stores,
		sessions:   d.Sessions,
		ownerEmail: d.OwnerEmail,
		loc:        loc,
		log:        log,
		now:        time.Now,
	}
}

// storeFor returns the appointment store bound to the session's token.
func (h *Handler) storeFor(sess *session.Session) *appointments.Store {
	return h.stores.Get(sess.ID, func() appointments.Backend {
		return h.api.WithToken(sess.Token)
	})
}

// clientFor returns a backend client carrying the session's token, if any.
func (h *Handler) clientFor(sess *session.Session) *backend.Client {
	if sess == nil {
		return h.api
	}
	return h.api.WithToken(sess.Token)
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess := session.FromContext(c)
	data["Session"] = sess
	data["IsOwner"] = sess != nil && sess.Capabilities.CanManageAppointments()

	if sess != nil {
		if f := sess.PopFlash(); f != nil {
			data["Flash"] = f
			if err := h.sessions.Save(c, sess); err != nil {
				h.log.Warn("web.flash_clear_failed", zap.Error(err))
			}
		}
	}

	c.HTML(status, name, data)
}

// aborted reports whether err only means the browser went away.
func aborted(c *gin.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return true
	}
	return false
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
