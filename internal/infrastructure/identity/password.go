package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

const (
	defaultSignInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	verifyTimeout         = 10 * time.Second
)

// passwordVerifier calls the Identity Toolkit signInWithPassword endpoint.
// Endpoint and HTTPClient are overridable for tests.
type passwordVerifier struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

func newPasswordVerifier(apiKey string) *passwordVerifier {
	return &passwordVerifier{
		APIKey:     apiKey,
		Endpoint:   defaultSignInEndpoint,
		HTTPClient: &http.Client{Timeout: verifyTimeout},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (v *passwordVerifier) verify(ctx context.Context, email, password string) (*ports.Verification, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, domain.ProviderError("VerifyPassword", err)
	}

	url := v.Endpoint + "?key=" + v.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.ProviderError("VerifyPassword", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.ErrTimeout
		}
		return nil, domain.ProviderError("VerifyPassword", err)
	}
	defer resp.Body.Close()

	var decoded signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.ProviderError("VerifyPassword", err)
	}

	if decoded.Error != nil {
		return nil, normalizeSignInError(decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.ProviderError("VerifyPassword", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return &ports.Verification{
		UserID:       decoded.LocalID,
		Email:        decoded.Email,
		IDToken:      decoded.IDToken,
		RefreshToken: decoded.RefreshToken,
	}, nil
}

// normalizeSignInError maps Identity Toolkit error codes onto the domain
// taxonomy. Which credential part was wrong is deliberately collapsed into
// one error so the API never leaks account existence.
func normalizeSignInError(message string) error {
	switch {
	case strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return domain.ErrInvalidCredentials
	case strings.HasPrefix(message, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return domain.ErrRateLimited
	default:
		return domain.ProviderError("VerifyPassword", errors.New(message))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
