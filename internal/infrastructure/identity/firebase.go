// Package identity implements the credential provider against Firebase
// Authentication. Account management goes through the Admin SDK; password
// verification goes through the Identity Toolkit REST API because the
// Admin SDK has no password check.
package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// Provider is the Firebase-backed ports.CredentialProvider.
type Provider struct {
	client   *fbauth.Client
	verifier *passwordVerifier
}

// New builds a Provider from service-account credentials and the Web API
// key used by the password endpoint.
func New(ctx context.Context, projectID string, credentialsJSON []byte, apiKey string) (*Provider, error) {
	opts := []option.ClientOption{}
	if len(credentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, domain.ProviderError("identity.New", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, domain.ProviderError("identity.New", err)
	}

	return &Provider{
		client:   client,
		verifier: newPasswordVerifier(apiKey),
	}, nil
}

func (p *Provider) CreateAccount(ctx context.Context, email, password, displayName string) (*ports.AccountHandle, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, domain.ProviderError("CreateAccount", err)
	}

	return &ports.AccountHandle{
		ID:          record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}, nil
}

func (p *Provider) VerifyPassword(ctx context.Context, email, password string) (*ports.Verification, error) {
	return p.verifier.verify(ctx, email, password)
}

func (p *Provider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", domain.ErrProfileNotFound
		}
		return "", domain.ProviderError("PasswordResetLink", err)
	}
	return link, nil
}
