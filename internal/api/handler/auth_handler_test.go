package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput, password string) (*domain.Profile, error)
	loginFn   func(ctx context.Context, email, password string) (*ports.Session, error)
	loginAsFn func(ctx context.Context, email, password string, role domain.Role) (*ports.Session, error)
	resetFn   func(ctx context.Context, email string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput, password string) (*domain.Profile, error) {
	return s.signupFn(ctx, in, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) LoginAs(ctx context.Context, email, password string, role domain.Role) (*ports.Session, error) {
	return s.loginAsFn(ctx, email, password, role)
}

func (s *stubAuthService) Logout(session *ports.Session) {
	if session != nil {
		*session = ports.Session{}
	}
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return s.resetFn(ctx, email)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput, password string) (*domain.Profile, error) {
			if in.Email != "asha@example.com" || password != "hunter22" {
				t.Fatalf("unexpected args: %s %s", in.Email, password)
			}
			return &domain.Profile{ID: "uid-1", Name: in.Name, Email: in.Email, Role: domain.RoleUser, BloodGroup: in.BloodGroup}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	body := `{"name":"Asha Rao","email":"asha@example.com","password":"hunter22","contact_number":"555-0101","location":"Pune","blood_group":"O+"}`
	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup", body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "uid-1" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, "secret", time.Hour)

	body := `{"name":"A","email":"not-an-email","password":"x","blood_group":"Z+"}`
	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup", body)

	err := h.Signup(c)
	var he *echo.HTTPError
	if !asHTTPError(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_MintsToken(t *testing.T) {
	profile := &domain.Profile{ID: "uid-1", Email: "asha@example.com", Role: domain.RoleUser}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
			return &ports.Session{ProfileID: "uid-1", Profile: profile, Token: "provider-token"}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ProviderToken != "provider-token" {
		t.Errorf("provider token = %q", resp.ProviderToken)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("minted token invalid: %v", err)
	}
	if claims["profile_id"] != "uid-1" || claims["role"] != "user" || claims["email"] != "asha@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAuthHandler_Login_WithRoleGate(t *testing.T) {
	called := false
	stub := &stubAuthService{
		loginAsFn: func(ctx context.Context, email, password string, role domain.Role) (*ports.Session, error) {
			called = true
			if role != domain.RoleAdmin {
				t.Fatalf("role = %q, want admin", role)
			}
			return nil, domain.ErrRoleMismatch
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"pw","role":"admin"}`)
	err := h.Login(c)
	if !called {
		t.Fatal("LoginAs not called when role present")
	}
	if err == nil {
		t.Fatal("expected role mismatch error to propagate")
	}
}

func TestAuthHandler_Reset_AlwaysAccepted(t *testing.T) {
	stub := &stubAuthService{
		resetFn: func(ctx context.Context, email string) (string, error) {
			return "", domain.ErrProfileNotFound
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/reset", `{"email":"ghost@example.com"}`)
	if err := h.RequestPasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// Unknown accounts get the same 202 as known ones.
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func asHTTPError(err error, target **echo.HTTPError) bool {
	he, ok := err.(*echo.HTTPError)
	if ok {
		*target = he
	}
	return ok
}
