package handlers

import (
	"context"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	"github.com/BruksfildServices01/pitstop-servix/internal/middleware"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	ucAppointment "github.com/BruksfildServices01/pitstop-servix/internal/usecase/appointment"
)

// ======================================================
// PORTS
// ======================================================

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateCustomer(ctx context.Context, u *models.User, profile *models.CustomerProfile) error
	CreateGarageOwner(ctx context.Context, u *models.User, garage *models.Garage) error
	ListGarageCustomers(ctx context.Context, garageID uint, query string) ([]models.User, error)
}

type GarageStore interface {
	ListApproved(ctx context.Context) ([]models.Garage, error)
	SearchApproved(ctx context.Context, name string) ([]models.Garage, error)
	GetApproved(ctx context.Context, id uint) (*models.Garage, error)
	Get(ctx context.Context, id uint) (*models.Garage, error)
	GetByOwner(ctx context.Context, ownerID uint) (*models.Garage, error)
	ListPending(ctx context.Context) ([]models.Garage, error)
	Save(ctx context.Context, g *models.Garage) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type PhotoUploader interface {
	Upload(ctx context.Context, garageID uint, r io.Reader) (string, error)
}

// ======================================================
// HELPERS
// ======================================================

func actorFrom(c *gin.Context) ucAppointment.Actor {
	return ucAppointment.Actor{
		UserID: c.MustGet(middleware.ContextUserID).(uint),
		Role:   c.GetString(middleware.ContextUserRole),
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
