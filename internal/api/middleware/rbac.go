package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

// RBAC lets the request through only when the session's current role is one
// of allowedRoles. The role is read at request time, so a logout takes
// effect on the very next call.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := SessionFrom(c)
			if err != nil {
				return err
			}
			identity := sess.Identity()
			if !identity.Authenticated() {
				return domain.ErrNotAuthenticated
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
