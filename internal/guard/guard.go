// Package guard decides what a signed-in user may see. The decision is made
// once at login and carried in the session as a Capabilities value.
package guard

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

const (
	DefaultOwnerEmail = "owner@pitstopservix.com"

	// ContextCapabilities is the gin context key the session middleware fills.
	ContextCapabilities = "capabilities"
)

// OwnerRoles grant access to the owner pages.
var OwnerRoles = []string{"OWNER", "ADMIN", "GARAGE_OWNER"}

type Capabilities struct {
	Owner bool `json:"owner"`
}

func (c Capabilities) CanManageAppointments() bool {
	return c.Owner
}

// Decide computes the capabilities of user. The owner email comparison is
// case-insensitive; an empty ownerEmail falls back to DefaultOwnerEmail.
func Decide(user *backend.User, ownerEmail string) Capabilities {
	if user == nil {
		return Capabilities{}
	}
	if ownerEmail == "" {
		ownerEmail = DefaultOwnerEmail
	}

	switch {
	case isOwnerRole(user.Role):
		return Capabilities{Owner: true}
	case slices.ContainsFunc(user.Roles, isOwnerRole):
		return Capabilities{Owner: true}
	case user.IsOwner:
		return Capabilities{Owner: true}
	case user.Email != "" && strings.EqualFold(strings.TrimSpace(user.Email), ownerEmail):
		return Capabilities{Owner: true}
	}
	return Capabilities{}
}

func isOwnerRole(role string) bool {
	return slices.Contains(OwnerRoles, strings.ToUpper(strings.TrimSpace(role)))
}

// RequireOwner redirects to "/" unless the request carries owner capabilities.
// It only hides pages; the API enforces roles on its own.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		caps, _ := c.Get(ContextCapabilities)
		if cc, ok := caps.(Capabilities); !ok || !cc.CanManageAppointments() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
