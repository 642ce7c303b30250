package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/guard"
	"github.com/BruksfildServices01/pitstop-servix/internal/session"
)

const (
	loginFailed         = "Login failed"
	registerFailed      = "Could not register"
	garageRegisterOK    = "Garage registration submitted. You can login after approval."
	garageRegisterError = "Garage registration failed"
)

// ======================================================
// LOGIN
// ======================================================

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Form": loginForm{}})
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	form.Email = strings.TrimSpace(form.Email)

	res, err := h.api.Login(c.Request.Context(), backend.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if aborted(c, err) {
			return
		}
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Form":  loginForm{Email: form.Email},
			"Error": backend.Message(err, loginFailed),
		})
		return
	}

	if !h.signIn(c, res) {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Form":  loginForm{Email: form.Email},
			"Error": loginFailed,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ======================================================
// SIGNUP (customer)
// ======================================================

type signupForm struct {
	Name          string `form:"name"`
	Email         string `form:"email"`
	Password      string `form:"password"`
	VehicleNumber string `form:"vehicleNumber"`
	Phone         string `form:"phone"`
}

func (h *Handler) SignupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"Form": signupForm{}})
}

func (h *Handler) Signup(c *gin.Context) {
	var form signupForm
	_ = c.ShouldBind(&form)

	in := backend.RegisterCustomerInput{
		User: backend.AccountInput{
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.TrimSpace(form.Email),
			Password: form.Password,
		},
	}
	in.Profile.VehicleNumber = strings.TrimSpace(form.VehicleNumber)
	in.Profile.Phone = strings.TrimSpace(form.Phone)

	form.Password = ""

	res, err := h.api.RegisterCustomer(c.Request.Context(), in)
	if err != nil {
		if aborted(c, err) {
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "signup.html", gin.H{
			"Form":  form,
			"Error": backend.Message(err, registerFailed),
		})
		return
	}

	if !h.signIn(c, res) {
		h.render(c, http.StatusUnprocessableEntity, "signup.html", gin.H{
			"Form":  form,
			"Error": registerFailed,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ======================================================
// GARAGE REGISTRATION
// ======================================================

type garageForm struct {
	Name          string `form:"name"`
	Email         string `form:"email"`
	Password      string `form:"password"`
	GarageName    string `form:"garageName"`
	GarageAddress string `form:"garageAddress"`
}

func (h *Handler) RegisterGaragePage(c *gin.Context) {
	h.render(c, http.StatusOK, "register_garage.html", gin.H{"Form": garageForm{}})
}

func (h *Handler) RegisterGarage(c *gin.Context) {
	var form garageForm
	_ = c.ShouldBind(&form)

	in := backend.RegisterGarageInput{
		User: backend.AccountInput{
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.TrimSpace(form.Email),
			Password: form.Password,
		},
	}
	in.Garage.GarageName = strings.TrimSpace(form.GarageName)
	in.Garage.GarageAddress = strings.TrimSpace(form.GarageAddress)

	form.Password = ""

	if _, err := h.api.RegisterGarage(c.Request.Context(), in); err != nil {
		if aborted(c, err) {
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "register_garage.html", gin.H{
			"Form":  form,
			"Error": backend.Message(err, garageRegisterError),
		})
		return
	}

	h.sessions.Flash(c, session.FlashSuccess, garageRegisterOK)
	c.Redirect(http.StatusSeeOther, "/login")
}

// ======================================================
// LOGOUT
// ======================================================

func (h *Handler) Logout(c *gin.Context) {
	id, err := h.sessions.Destroy(c)
	if err != nil {
		h.log.Warn("web.logout_failed", zap.Error(err))
	}
	if id != "" {
		h.stores.Drop(id)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// signIn starts a session for a successful auth response. Capabilities are
// decided here once and kept for the life of the session.
func (h *Handler) signIn(c *gin.Context, res *backend.AuthResult) bool {
	if res == nil || res.Token == "" || res.User == nil {
		return false
	}

	if old := session.FromContext(c); old != nil {
		h.stores.Drop(old.ID)
	}

	caps := guard.Decide(res.User, h.ownerEmail)
	if _, err := h.sessions.Start(c, res.Token, res.User, caps); err != nil {
		h.log.Error("web.session_start_failed", zap.Error(err))
		return false
	}

	h.log.Info("web.signed_in",
		zap.Int64("user_id", res.User.ID),
		zap.Bool("owner", caps.Owner),
	)
	return true
}
