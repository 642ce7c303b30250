package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/pitstop-servix/internal/authtoken"
	domain "github.com/BruksfildServices01/pitstop-servix/internal/domain/appointment"
	"github.com/BruksfildServices01/pitstop-servix/internal/dto"
	"github.com/BruksfildServices01/pitstop-servix/internal/httperr"
	"github.com/BruksfildServices01/pitstop-servix/internal/models"
	"github.com/BruksfildServices01/pitstop-servix/internal/validators"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgGaragePending      = "Garage registration submitted. You can login after approval."
	msgAwaitingApproval   = "Your garage is awaiting approval."
	msgEmailTaken         = "An account with this email already exists."
)

type AuthHandler struct {
	users       UserStore
	tokens      *authtoken.Issuer
	checkDomain func(ctx context.Context, email string) bool
	log         *zap.Logger
}

func NewAuthHandler(
	users UserStore,
	tokens *authtoken.Issuer,
	checkDomain bool,
	log *zap.Logger,
) *AuthHandler {
	h := &AuthHandler{users: users, tokens: tokens, log: log}
	if checkDomain {
		h.checkDomain = validators.IsEmailDomainValid
	}
	return h
}

// --------- Requests ---------

type AccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterCustomerRequest struct {
	User    AccountRequest `json:"user" binding:"required"`
	Profile struct {
		VehicleNumber string `json:"vehicleNumber"`
		Phone         string `json:"phone"`
	} `json:"profile"`
}

type RegisterGarageRequest struct {
	User   AccountRequest `json:"user" binding:"required"`
	Garage struct {
		GarageName    string `json:"garageName" binding:"required"`
		GarageAddress string `json:"garageAddress"`
		LicenseNumber string `json:"licenseNumber"`
		Phone         string `json:"phone"`
	} `json:"garage" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in your name, email and a password of at least 6 characters.")
		return
	}

	user, ok := h.newUser(c, req.User, models.RoleCustomer)
	if !ok {
		return
	}

	profile := &models.CustomerProfile{
		VehicleNumber: strings.ToUpper(strings.TrimSpace(req.Profile.VehicleNumber)),
		Phone:         strings.TrimSpace(req.Profile.Phone),
	}

	if err := h.users.CreateCustomer(c.Request.Context(), user, profile); err != nil {
		h.createFailed(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Unable to sign you in right now.")
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// RegisterGarage creates the owner and an unapproved garage. No token is
// issued until an admin approves the garage.
func (h *AuthHandler) RegisterGarage(c *gin.Context) {
	var req RegisterGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in the owner details and the garage name.")
		return
	}

	user, ok := h.newUser(c, req.User, models.RoleGarageOwner)
	if !ok {
		return
	}

	garage := &models.Garage{
		GarageName:    strings.TrimSpace(req.Garage.GarageName),
		GarageAddress: strings.TrimSpace(req.Garage.GarageAddress),
		LicenseNumber: strings.TrimSpace(req.Garage.LicenseNumber),
		Phone:         strings.TrimSpace(req.Garage.Phone),
	}

	if err := h.users.CreateGarageOwner(c.Request.Context(), user, garage); err != nil {
		h.createFailed(c, err)
		return
	}

	h.log.Info("garage registered",
		zap.Uint("garage_id", garage.ID),
		zap.Uint("owner_id", user.ID),
	)

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:    dto.NewUserResponse(user),
		Message: msgGaragePending,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", msgInvalidCredentials)
		return
	}

	email := validators.NormalizeEmail(req.Email)

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", msgInvalidCredentials)
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Unable to sign you in right now.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", msgInvalidCredentials)
		return
	}

	if user.Role == models.RoleGarageOwner && (user.Garage == nil || !user.Garage.Approved) {
		httperr.Forbidden(c, "garage_pending_approval", msgAwaitingApproval)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Unable to sign you in right now.")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// --------- Helpers ---------

// newUser validates the account fields and hashes the password. It writes
// the error response itself and reports false on failure.
func (h *AuthHandler) newUser(c *gin.Context, req AccountRequest, role string) (*models.User, bool) {
	ctx := c.Request.Context()
	email := validators.NormalizeEmail(req.Email)

	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "Please enter a valid email address.")
		return nil, false
	}
	if h.checkDomain != nil && !h.checkDomain(ctx, email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return nil, false
	}

	exists, err := h.users.EmailExists(ctx, email)
	if err != nil {
		httperr.Internal(c, "internal_error", "Unable to register right now.")
		return nil, false
	}
	if exists {
		httperr.Conflict(c, "email_already_exists", msgEmailTaken)
		return nil, false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Unable to register right now.")
		return nil, false
	}

	return &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}, true
}

func (h *AuthHandler) createFailed(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "email_already_exists", msgEmailTaken)
		return
	}
	h.log.Error("registration failed", zap.Error(err))
	httperr.Internal(c, "failed_to_create_user", "Unable to register right now.")
}
