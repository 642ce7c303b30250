package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pitstop-servix/internal/guard"
)

func (h *Handler) Register(r *gin.Engine) error {
	tmpl, err := parseTemplates(h.loc)
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// PAGES
	// ======================================================
	pages := r.Group("/")
	pages.Use(h.sessions.Middleware())
	{
		pages.GET("/", h.Home)
		pages.GET("/garages/:id", h.GarageDetails)
		pages.GET("/garages/:id/book", h.BookingPage)
		pages.POST("/garages/:id/book", h.Book)

		pages.GET("/login", h.LoginPage)
		pages.POST("/login", h.Login)
		pages.GET("/signup", h.SignupPage)
		pages.POST("/signup", h.Signup)
		pages.GET("/register-garage", h.RegisterGaragePage)
		pages.POST("/register-garage", h.RegisterGarage)
		pages.POST("/logout", h.Logout)

		// ------------------------------
		// OWNER
		// ------------------------------
		admin := pages.Group("/admin")
		admin.Use(guard.RequireOwner())
		{
			admin.GET("/appointments", h.AdminAppointments)
			admin.POST("/appointments/refresh", h.RefreshAppointments)
			admin.POST("/appointments/:id/status", h.UpdateAppointmentStatus)
		}
	}

	return nil
}
