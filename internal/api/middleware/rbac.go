package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// RBAC restricts a route to the given roles. It relies on Auth having run
// first; a missing role claim is treated as forbidden, not as a server
// error.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
