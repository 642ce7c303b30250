package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/appointments"
	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/session"
)

const (
	updateFailed  = "Failed to update appointment."
	updateApplied = "Appointment updated."
)

func (h *Handler) AdminAppointments(c *gin.Context) {
	sess := session.FromContext(c)
	store := h.storeFor(sess)

	if err := store.EnsureLoaded(c.Request.Context()); err != nil && aborted(c, err) {
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	status := appointments.NormalizeStatus(c.DefaultQuery("status", appointments.StatusAll))
	if status != appointments.StatusAll && !appointments.IsValidStatus(status) {
		status = appointments.StatusAll
	}

	snap := store.Snapshot()
	filtered := appointments.Filter(snap.Appointments, query, status)

	h.render(c, http.StatusOK, "admin.html", gin.H{
		"Query":    query,
		"Status":   status,
		"Statuses": appointments.Statuses,
		"Metrics":  store.Metrics(),
		"Groups":   appointments.GroupByGarage(filtered),
		"Matches":  len(filtered),
		"Error":    snap.Error,
		"Back":     adminURL(query, status),
	})
}

func (h *Handler) RefreshAppointments(c *gin.Context) {
	sess := session.FromContext(c)

	if err := h.storeFor(sess).FetchAll(c.Request.Context()); err != nil {
		if aborted(c, err) {
			return
		}
		h.sessions.Flash(c, session.FlashError, backend.Message(err, "Unable to load appointments"))
	}

	c.Redirect(http.StatusSeeOther, adminURL(c.PostForm("q"), c.PostForm("status")))
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	sess := session.FromContext(c)
	back := adminURL(c.PostForm("q"), c.PostForm("status_filter"))

	id, ok := paramID(c)
	if !ok {
		h.sessions.Flash(c, session.FlashError, updateFailed)
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	store := h.storeFor(sess)
	sent, err := store.UpdateStatus(c.Request.Context(), id, c.PostForm("status"))
	if err != nil {
		if aborted(c, err) {
			return
		}
		h.log.Info("web.status_update_failed", zap.Int64("appointment_id", id), zap.Error(err))
		h.sessions.Flash(c, session.FlashError, backend.Message(err, updateFailed))
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	msg := updateApplied
	if sent {
		msg = fmt.Sprintf("Confirmation email sent to %s.", recipient(store, id))
	}
	h.sessions.Flash(c, session.FlashSuccess, msg)

	c.Redirect(http.StatusSeeOther, back)
}

func recipient(store *appointments.Store, id int64) string {
	for _, ap := range store.Snapshot().Appointments {
		if ap.ID != id {
			continue
		}
		switch {
		case ap.Customer.Email != "":
			return ap.Customer.Email
		case ap.Customer.Name != "":
			return ap.Customer.Name
		}
	}
	return "customer"
}

func adminURL(query, status string) string {
	v := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		v.Set("q", q)
	}
	if s := appointments.NormalizeStatus(status); s != "" && s != appointments.StatusAll {
		v.Set("status", s)
	}
	if len(v) == 0 {
		return "/admin/appointments"
	}
	return "/admin/appointments?" + v.Encode()
}
