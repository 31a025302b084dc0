package ports

import "context"

// Mailer dispatches outbound email. All sends are best-effort from the
// caller's point of view: a delivery failure is logged and swallowed,
// never propagated into the triggering operation.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
	SendDonorAlert(ctx context.Context, alert DonorAlert) error
}
