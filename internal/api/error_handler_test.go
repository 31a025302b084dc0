package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

func TestResolveErrorDomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrDuplicateAccount, http.StatusConflict},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrTimeout, http.StatusGatewayTimeout},
		{domain.ErrProviderUnavailable, http.StatusBadGateway},
		{domain.ErrProfileNotFound, http.StatusNotFound},
		{domain.ErrPostNotFound, http.StatusNotFound},
		{domain.ErrRoleMismatch, http.StatusForbidden},
		{domain.ErrNotPostOwner, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrInvalidBloodGroup, http.StatusUnprocessableEntity},
		{domain.ErrDonationInFuture, http.StatusUnprocessableEntity},
		{domain.StoreError("profiles.List", fmt.Errorf("no reachable servers")), http.StatusServiceUnavailable},
		{domain.ErrRecordInconsistency, http.StatusInternalServerError},
		{fmt.Errorf("something unexpected"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		code, _ := resolveError(tc.err, zerolog.Nop(), c)
		if code != tc.want {
			t.Errorf("resolveError(%v) = %d, want %d", tc.err, code, tc.want)
		}
	}
}

func TestResolveErrorWrappedSentinel(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	wrapped := fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	code, msg := resolveError(wrapped, zerolog.Nop(), c)
	if code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", code)
	}
	// The response never distinguishes wrong email from wrong password.
	if msg != "invalid email or password" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestResolveErrorEchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	code, msg := resolveError(echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), zerolog.Nop(), c)
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("got %d %q", code, msg)
	}
}
