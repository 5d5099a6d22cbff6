package ports

import "context"

// Mailer delivers out-of-band notifications. The reset flow depends on the
// returned error: a failed delivery rolls back the persisted reset token.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
