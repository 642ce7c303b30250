package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/httpresp"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db       *gorm.DB
	garages  GarageStore
	timezone string
}

func NewAuditLogsHandler(db *gorm.DB, garages GarageStore, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, garages: garages, timezone: tz}
}

// List pages through the audit trail. Admins see every garage, owners
// only their own.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Scope
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if !actor.IsAdmin() {
		g, err := h.garages.GetByOwner(c.Request.Context(), actor.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			httpresp.Page(c, []models.AuditLog{}, page, limit, 0)
			return
		}
		if err != nil {
			httperr.Internal(c, "audit_scope_failed", "Unable to load the activity log.")
			return
		}
		q = q.Where("garage_id = ?", g.ID)
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from, err := timezone.ParseDate(h.timezone, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := timezone.ParseDate(h.timezone, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Unable to count activity.")
		return
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Unable to load the activity log.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
