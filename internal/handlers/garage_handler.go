package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/dto"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/httpresp"
	"github.com/BruksfildServices01/pitstop-servix/internal/photos"
)

// ======================================================
// HANDLER
// ======================================================

type GarageHandler struct {
	garages GarageStore
	photos  PhotoUploader
	audit   Auditor
	log     *zap.Logger
}

// NewGarageHandler accepts a nil uploader when photo storage is not
// configured; uploads then answer 503.
func NewGarageHandler(
	garages GarageStore,
	uploader PhotoUploader,
	auditor Auditor,
	log *zap.Logger,
) *GarageHandler {
	return &GarageHandler{
		garages: garages,
		photos:  uploader,
		audit:   auditor,
		log:     log,
	}
}

type UpdateGarageRequest struct {
	GarageName    *string `json:"garageName"`
	GarageAddress *string `json:"garageAddress"`
	Phone         *string `json:"phone"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *GarageHandler) List(c *gin.Context) {
	garages, err := h.garages.ListApproved(c.Request.Context())
	if err != nil {
		h.log.Error("list garages failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_garages", "Unable to load garages.")
		return
	}
	httpresp.List(c, dto.NewGarageList(garages))
}

func (h *GarageHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		h.List(c)
		return
	}

	garages, err := h.garages.SearchApproved(c.Request.Context(), name)
	if err != nil {
		h.log.Error("search garages failed", zap.Error(err))
		httperr.Internal(c, "failed_to_search_garages", "Unable to search garages.")
		return
	}
	httpresp.List(c, dto.NewGarageList(garages))
}

func (h *GarageHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.NotFound(c, "garage_not_found", "Garage not found")
		return
	}

	g, err := h.garages.GetApproved(c.Request.Context(), id)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}
	httpresp.OK(c, dto.NewGarageResponse(g))
}

// ======================================================
// OWNER
// ======================================================

func (h *GarageHandler) GetMine(c *gin.Context) {
	g, err := h.garages.GetByOwner(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}
	httpresp.OK(c, dto.NewGarageResponse(g))
}

func (h *GarageHandler) UpdateMine(c *gin.Context) {
	actor := actorFrom(c)

	g, err := h.garages.GetByOwner(c.Request.Context(), actor.UserID)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}

	var req UpdateGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid garage details.")
		return
	}

	if req.GarageName != nil {
		name := strings.TrimSpace(*req.GarageName)
		if name == "" {
			httperr.BadRequest(c, "invalid_garage_name", "Garage name cannot be empty.")
			return
		}
		g.GarageName = name
	}
	if req.GarageAddress != nil {
		g.GarageAddress = strings.TrimSpace(*req.GarageAddress)
	}
	if req.Phone != nil {
		g.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := h.garages.Save(c.Request.Context(), g); err != nil {
		httperr.Internal(c, "failed_to_update_garage", "Unable to save the garage.")
		return
	}

	h.audit.Dispatch(audit.Event{
		GarageID: &g.ID,
		UserID:   &actor.UserID,
		Action:   "garage_updated",
		Entity:   "garage",
		EntityID: &g.ID,
	})

	httpresp.OK(c, dto.NewGarageResponse(g))
}

// UploadPhoto replaces the garage image. Owners may only change their own
// garage; admins any.
func (h *GarageHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "photos_disabled", "Photo uploads are not available.")
		return
	}

	actor := actorFrom(c)
	id, ok := paramID(c)
	if !ok {
		httperr.NotFound(c, "garage_not_found", "Garage not found")
		return
	}

	g, err := h.garages.Get(c.Request.Context(), id)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}
	if !actor.IsAdmin() && g.OwnerID != actor.UserID {
		httperr.Forbidden(c, "forbidden", "You can only update your own garage.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, photos.MaxUploadBytes+1<<20)
	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Please attach a photo.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Please attach a photo.")
		return
	}
	defer f.Close()

	url, err := h.photos.Upload(c.Request.Context(), g.ID, f)
	if errors.Is(err, photos.ErrUnsupportedImage) {
		httperr.BadRequest(c, "unsupported_image", "Please upload a JPEG, PNG or WebP image under 5 MB.")
		return
	}
	if err != nil {
		h.log.Error("photo upload failed", zap.Uint("garage_id", g.ID), zap.Error(err))
		httperr.Internal(c, "photo_upload_failed", "Unable to upload the photo.")
		return
	}

	g.ImageURL = url
	if err := h.garages.Save(c.Request.Context(), g); err != nil {
		httperr.Internal(c, "failed_to_update_garage", "Unable to save the garage.")
		return
	}

	h.audit.Dispatch(audit.Event{
		GarageID: &g.ID,
		UserID:   &actor.UserID,
		Action:   "garage_photo_updated",
		Entity:   "garage",
		EntityID: &g.ID,
		Metadata: map[string]any{"url": url},
	})

	httpresp.OK(c, dto.NewGarageResponse(g))
}

// ======================================================
// ADMIN
// ======================================================

func (h *GarageHandler) ListPending(c *gin.Context) {
	garages, err := h.garages.ListPending(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_garages", "Unable to load garages.")
		return
	}
	httpresp.List(c, dto.NewGarageList(garages))
}

func (h *GarageHandler) Approve(c *gin.Context) {
	actor := actorFrom(c)
	id, ok := paramID(c)
	if !ok {
		httperr.NotFound(c, "garage_not_found", "Garage not found")
		return
	}

	g, err := h.garages.Get(c.Request.Context(), id)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}

	if !g.Approved {
		g.Approved = true
		if err := h.garages.Save(c.Request.Context(), g); err != nil {
			httperr.Internal(c, "failed_to_update_garage", "Unable to save the garage.")
			return
		}

		h.audit.Dispatch(audit.Event{
			GarageID: &g.ID,
			UserID:   &actor.UserID,
			Action:   "garage_approved",
			Entity:   "garage",
			EntityID: &g.ID,
		})
	}

	httpresp.OK(c, dto.NewGarageResponse(g))
}

func (h *GarageHandler) lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "garage_not_found", "Garage not found")
		return
	}
	h.log.Error("garage lookup failed", zap.Error(err))
	httperr.Internal(c, "failed_to_get_garage", "Unable to load the garage.")
}
