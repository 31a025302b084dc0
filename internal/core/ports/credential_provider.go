package ports

import "context"

// AccountHandle identifies a freshly created provider account.
type AccountHandle struct {
	ID          string
	Email       string
	DisplayName string
}

// Verification is the result of a successful password check against the
// identity provider.
type Verification struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
}

// CredentialProvider wraps the remote identity service. It is the single
// source of truth for authentication decisions; no password ever touches
// local storage.
type CredentialProvider interface {
	// CreateAccount registers a new identity. Fails with
	// domain.ErrDuplicateAccount when the email is already registered
	// upstream.
	CreateAccount(ctx context.Context, email, password, displayName string) (*AccountHandle, error)

	// VerifyPassword checks credentials over the network and returns a
	// session token. Provider-specific failure codes are normalized into
	// domain.ErrInvalidCredentials, domain.ErrRateLimited,
	// domain.ErrTimeout, or domain.ErrProviderUnavailable.
	VerifyPassword(ctx context.Context, email, password string) (*Verification, error)

	// PasswordResetLink issues a provider-hosted reset link for the email.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
