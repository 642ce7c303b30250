package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/dto"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/httpresp"
)

type MeHandler struct {
	users   UserStore
	garages GarageStore
}

func NewMeHandler(users UserStore, garages GarageStore) *MeHandler {
	return &MeHandler{users: users, garages: garages}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Please log in again.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Unable to load your account.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

// ListCustomers lists the customers who booked at the caller's garage.
func (h *MeHandler) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	g, err := h.garages.GetByOwner(ctx, actorFrom(c).UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpresp.List(c, []dto.UserResponse{})
			return
		}
		httperr.Internal(c, "failed_to_list_customers", "Unable to load customers.")
		return
	}

	users, err := h.users.ListGarageCustomers(ctx, g.ID, c.Query("query"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Unable to load customers.")
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	httpresp.List(c, out)
}
