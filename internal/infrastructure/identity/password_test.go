package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

func fakeSignInServer(t *testing.T, handler http.HandlerFunc) *passwordVerifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	v := newPasswordVerifier("test-key")
	v.Endpoint = srv.URL
	v.HTTPClient = srv.Client()
	return v
}

func writeSignInError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message},
	})
}

func TestVerifySuccess(t *testing.T) {
	v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.ReturnSecureToken {
			t.Error("returnSecureToken not set")
		}
		_ = json.NewEncoder(w).Encode(signInResponse{
			LocalID:      "uid-42",
			Email:        req.Email,
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
		})
	})

	got, err := v.verify(context.Background(), "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != "uid-42" || got.IDToken != "id-token" || got.RefreshToken != "refresh-token" {
		t.Errorf("verification = %+v", got)
	}
}

func TestVerifyCredentialErrorsCollapse(t *testing.T) {
	for _, message := range []string{
		"INVALID_LOGIN_CREDENTIALS",
		"EMAIL_NOT_FOUND",
		"INVALID_PASSWORD",
		"USER_DISABLED",
	} {
		t.Run(message, func(t *testing.T) {
			v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeSignInError(w, http.StatusBadRequest, message)
			})
			_, err := v.verify(context.Background(), "asha@example.com", "pw")
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyRateLimited(t *testing.T) {
	v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSignInError(w, http.StatusBadRequest, "TOO_MANY_ATTEMPTS_TRY_LATER : access to this account has been temporarily disabled")
	})

	_, err := v.verify(context.Background(), "asha@example.com", "pw")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestVerifyUnknownProviderError(t *testing.T) {
	v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSignInError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
	})

	_, err := v.verify(context.Background(), "asha@example.com", "pw")
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestVerifyTimeout(t *testing.T) {
	v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	v.HTTPClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := v.verify(context.Background(), "asha@example.com", "pw")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestVerifyContextDeadline(t *testing.T) {
	v := fakeSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := v.verify(ctx, "asha@example.com", "pw")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}
