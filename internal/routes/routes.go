package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	"github.com/BruksfildServices01/pitstop-servix/internal/authtoken"
	"github.com/BruksfildServices01/pitstop-servix/internal/config"
	"github.com/BruksfildServices01/pitstop-servix/internal/handlers"
	infraRepo "github.com/BruksfildServices01/pitstop-servix/internal/infra/repository"
	"github.com/BruksfildServices01/pitstop-servix/internal/middleware"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/notify"
	ucAppointment "github.com/BruksfildServices01/pitstop-servix/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher
	Mailer notify.Sender
	// Photos is nil when S3 is not configured.
	Photos handlers.PhotoUploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	garageRepo := infraRepo.NewGarageGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	tokens := authtoken.NewIssuer(cfg.JWTSecret, authtoken.DefaultTTL)
	confirmer := notify.NewConfirmer(d.Mailer, d.Log)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Audit,
		cfg.Timezone,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		confirmer,
		d.Audit,
		cfg.Timezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, tokens, cfg.CheckEmailDomain, d.Log)
	meHandler := handlers.NewMeHandler(userRepo, garageRepo)
	garageHandler := handlers.NewGarageHandler(garageRepo, d.Photos, d.Audit, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsUC,
		updateStatusUC,
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, garageRepo, cfg.Timezone)

	ownerOrAdmin := middleware.RequireRoles(models.RoleGarageOwner, models.RoleAdmin)
	ownerOnly := middleware.RequireRoles(models.RoleGarageOwner)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/register/customer", authHandler.RegisterCustomer)
		api.POST("/register/garage", authHandler.RegisterGarage)
		api.POST("/login", authHandler.Login)

		// ------------------------------
		// PUBLIC GARAGES
		// ------------------------------
		api.GET("/garages", garageHandler.List)
		api.GET("/garages/search/:name", garageHandler.Search)
		api.GET("/garages/:id", garageHandler.Get)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/garage", ownerOnly, garageHandler.GetMine)
			secured.PATCH("/me/garage", ownerOnly, garageHandler.UpdateMine)
			secured.GET("/me/customers", ownerOnly, meHandler.ListCustomers)

			secured.PUT("/garages/:id/photo", ownerOrAdmin, garageHandler.UploadPhoto)
			secured.GET("/admin/garages/pending", adminOnly, garageHandler.ListPending)
			secured.PATCH("/garages/:id/approve", adminOnly, garageHandler.Approve)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/status", ownerOrAdmin, appointmentHandler.UpdateStatus)

			secured.GET("/audit-logs", ownerOrAdmin, auditLogsHandler.List)
		}
	}
}
