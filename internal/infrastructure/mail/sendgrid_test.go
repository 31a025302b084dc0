package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

func fakeSendGrid(t *testing.T, status int, capture *map[string]any) *SendGridMailer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sg-key" {
			t.Errorf("authorization = %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Fatalf("decode body: %v", err)
			}
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	m := NewSendGridMailer("sg-key", "no-reply@bloodlink.example", "BloodLink Registry")
	m.Endpoint = srv.URL
	m.HTTPClient = srv.Client()
	return m
}

func TestSendPasswordReset(t *testing.T) {
	var body map[string]any
	m := fakeSendGrid(t, http.StatusAccepted, &body)

	err := m.SendPasswordReset(context.Background(), "asha@example.com", "https://id.example/reset?oob=abc")
	if err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}

	content := body["content"].([]any)[0].(map[string]any)
	if !strings.Contains(content["value"].(string), "https://id.example/reset?oob=abc") {
		t.Errorf("reset link missing from body: %v", content["value"])
	}
	from := body["from"].(map[string]any)
	if from["email"] != "no-reply@bloodlink.example" {
		t.Errorf("from = %v", from)
	}
}

func TestSendDonorAlert(t *testing.T) {
	var body map[string]any
	m := fakeSendGrid(t, http.StatusAccepted, &body)

	err := m.SendDonorAlert(context.Background(), ports.DonorAlert{
		Email:            "donor@example.com",
		DonorName:        "Ravi",
		BloodGroupNeeded: domain.BloodONeg,
		Location:         "City Hospital",
		Urgency:          domain.UrgencyHigh,
		PostID:           "post-1",
	})
	if err != nil {
		t.Fatalf("SendDonorAlert: %v", err)
	}

	if subject := body["subject"].(string); !strings.Contains(subject, "O-") {
		t.Errorf("subject = %q", subject)
	}
}

func TestSendRejectedStatus(t *testing.T) {
	m := fakeSendGrid(t, http.StatusUnauthorized, nil)

	if err := m.SendPasswordReset(context.Background(), "asha@example.com", "link"); err == nil {
		t.Fatal("expected error on non-202 response")
	}
}
