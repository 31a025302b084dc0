package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// ResetThrottle abstracts the advisory rate limit on password-reset
// requests (Redis). A throttle failure is never fatal; the reset proceeds.
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	Mark(ctx context.Context, email string) error
}

// AuthService implements the signup/login/session protocol on top of the
// credential provider and the profile store. It holds no session state;
// sessions are values returned to the caller.
type AuthService struct {
	provider ports.CredentialProvider
	profiles ports.ProfileRepository
	throttle ResetThrottle // optional
	mailer   ports.Mailer  // optional
	logger   zerolog.Logger
}

func NewAuthService(
	provider ports.CredentialProvider,
	profiles ports.ProfileRepository,
	throttle ResetThrottle,
	mailer ports.Mailer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		provider: provider,
		profiles: profiles,
		throttle: throttle,
		mailer:   mailer,
		logger:   logger,
	}
}

// Signup creates the provider account first, then persists the profile
// under the provider-assigned id. If the save fails the account already
// exists upstream without a local record; the next login repairs it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput, password string) (*domain.Profile, error) {
	if in.Email == "" || password == "" || in.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.BloodGroup.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}

	account, err := s.provider.CreateAccount(ctx, in.Email, password, in.Name)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:            account.ID,
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Location:      in.Location,
		BloodGroup:    in.BloodGroup,
		Role:          domain.RoleUser,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.profiles.Save(ctx, account.ID, profile); err != nil {
		s.logger.Error().Err(err).Str("profile_id", account.ID).
			Msg("profile save failed after account creation, will self-heal on login")
		return nil, err
	}

	s.logger.Info().Str("profile_id", account.ID).Str("blood_group", string(in.BloodGroup)).Msg("donor registered")
	return profile, nil
}

// Login verifies credentials with the provider, then synchronizes the
// local profile. A missing local record is repaired in place rather than
// failing the login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	verification, err := s.provider.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.ensureProfile(ctx, verification.UserID, verification.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile_id", profile.ID).Str("role", string(profile.Role)).Msg("login")
	return &ports.Session{
		ProfileID:    profile.ID,
		Profile:      profile,
		Token:        verification.IDToken,
		RefreshToken: verification.RefreshToken,
	}, nil
}

// LoginAs rejects sessions whose role does not match the caller's
// expectation. The check runs after authentication, so a mismatch proves
// the credentials were right but the surface was wrong.
func (s *AuthService) LoginAs(ctx context.Context, email, password string, expected domain.Role) (*ports.Session, error) {
	session, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session.Profile.Role != expected {
		s.Logout(session)
		return nil, domain.ErrRoleMismatch
	}
	return session, nil
}

// Logout clears the session value. Unconditional, never fails.
func (s *AuthService) Logout(session *ports.Session) {
	if session != nil {
		*session = ports.Session{}
	}
}

// IsAdmin reports whether the profile belongs to an administrator.
func (s *AuthService) IsAdmin(p *domain.Profile) bool {
	return p.IsAdmin()
}

// RequestPasswordReset issues a provider reset link. The email dispatch is
// a side channel: failure to deliver is logged and swallowed so the link
// is still returned to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("reset throttle check failed, proceeding")
		} else if !allowed {
			return "", domain.ErrRateLimited
		}
	}

	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Mark(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to mark reset throttle")
		}
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("reset email dispatch failed")
		}
	}

	return link, nil
}

// ensureProfile loads the profile for a verified identity, repairing a
// missing local record with a minimal default. Only when the repair write
// itself fails is the login abandoned.
func (s *AuthService) ensureProfile(ctx context.Context, id, email string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	s.logger.Warn().Str("profile_id", id).Msg("identity exists without local record, creating default profile")
	profile = defaultProfile(id, email, time.Now().UTC())
	if err := s.profiles.Save(ctx, id, profile); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRecordInconsistency, err)
	}
	return profile, nil
}

// defaultProfile builds the minimal record used by the repair-on-read
// path: regular user, blank optional fields, name derived from the email
// local part.
func defaultProfile(id, email string, now time.Time) *domain.Profile {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &domain.Profile{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      domain.RoleUser,
		CreatedAt: now,
	}
}
