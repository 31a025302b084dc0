package ports

import (
	"context"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// SignupInput carries the self-service registration fields. Role is not
// among them; every signup produces a regular user.
type SignupInput struct {
	Name          string
	Email         string
	ContactNumber string
	Location      string
	BloodGroup    domain.BloodGroup
}

// Session is the authenticated context produced by a successful login.
// It is a plain value handed to the caller; the core keeps no session
// state of its own, so callers are free to hold one per logical actor.
// Profile is a snapshot — the record store remains the source of truth.
type Session struct {
	ProfileID    string          `json:"profile_id"`
	Profile      *domain.Profile `json:"profile"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"-"`
}

// AuthService composes the credential provider and the profile store into
// the signup/login/session protocol.
type AuthService interface {
	// Signup creates the provider account and persists the profile under
	// the provider-assigned id. No session is established.
	Signup(ctx context.Context, in SignupInput, password string) (*domain.Profile, error)

	// Login verifies credentials, loads the profile (creating a minimal
	// default record when the identity exists upstream but the local
	// record is missing), and returns a session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// LoginAs is Login plus a caller-supplied role gate: when the
	// authenticated profile's role differs from expected, the session is
	// discarded and domain.ErrRoleMismatch returned.
	LoginAs(ctx context.Context, email, password string, expected domain.Role) (*Session, error)

	// Logout clears the session value. It never fails.
	Logout(s *Session)

	// RequestPasswordReset issues a reset link and dispatches it by email
	// on a best-effort basis; delivery failure never fails the call.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
}
