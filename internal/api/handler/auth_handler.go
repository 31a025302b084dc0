package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/api/metrics"
	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// AuthHandler exposes the signup/login/reset endpoints. It mints the API's
// own short-lived JWT from the session; the provider token rides along in
// the response for clients that talk to provider-backed services directly.
type AuthHandler struct {
	authService ports.AuthService
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.SignupInput{
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		BloodGroup:    domain.BloodGroup(req.BloodGroup),
	}
	profile, err := h.authService.Signup(c.Request().Context(), in, req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	var session *ports.Session
	var err error
	if req.Role != "" {
		session, err = h.authService.LoginAs(ctx, req.Email, req.Password, domain.Role(req.Role))
	} else {
		session, err = h.authService.Login(ctx, req.Email, req.Password)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	token, err := h.mintToken(session)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:         token,
		ProviderToken: session.Token,
		Profile:       session.Profile,
	})
}

// Logout is stateless on the server side. The endpoint exists so clients
// have a uniform place to end a session; token invalidation is discarding
// it client-side before the TTL expires.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		// Absence is not revealed; every accepted address gets the same
		// answer.
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusAccepted, resetResponse{Message: "if the account exists, a reset email has been sent"})
		}
		return err
	}
	return c.JSON(http.StatusAccepted, resetResponse{Message: "if the account exists, a reset email has been sent"})
}

func (h *AuthHandler) mintToken(session *ports.Session) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"profile_id": session.ProfileID,
		"role":       string(session.Profile.Role),
		"email":      session.Profile.Email,
		"iat":        now.Unix(),
		"exp":        now.Add(h.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return signed, nil
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrRoleMismatch):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}
