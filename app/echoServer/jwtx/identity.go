package jwtx

import (
	"campusshelter/model"

	"github.com/labstack/echo/v4"
)

// Identity is the (userId, role) pair resolved from a verified token.
type Identity struct {
	UserID int64
	Role   model.Role
}

// FromContext reads the identity stored by the auth middleware.
func FromContext(c echo.Context) (Identity, bool) {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid <= 0 {
		return Identity{}, false
	}
	role, ok := c.Get("role").(model.Role)
	if !ok {
		return Identity{}, false
	}
	return Identity{UserID: uid, Role: role}, true
}

// HasRole reports whether the identity holds one of the given roles.
func (id Identity) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}
