package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. The
// profile id must be present; its absence means the middleware did not run
// on this route, which is a wiring bug surfaced as 401 rather than a
// panic.
func ctxClaims(c echo.Context) (profileID, role string, err error) {
	profileID, _ = c.Get("profile_id").(string)
	if profileID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return profileID, role, nil
}
