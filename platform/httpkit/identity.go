// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller.
// Handlers read it without depending on how the token was parsed.
type Identity interface {
	// UserID returns the token subject.
	UserID() uuid.UUID
	// Roles returns the roles carried by the token.
	Roles() []string
	// HasRole checks if the caller has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if a valid token was presented.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	return slices.Contains(i.roles, role)
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// NewIdentity builds an authenticated identity. Used by tests and by
// middleware after a token has been verified.
func NewIdentity(userID uuid.UUID, roles []string) Identity {
	return &identity{userID: userID, roles: roles, authenticated: true}
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		userID:        uid,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}

// SetIdentity stores the caller on the Gin context.
func SetIdentity(c *gin.Context, userID uuid.UUID, roles []string) {
	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRolesKey, roles)
}
