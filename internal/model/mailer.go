package model

import "context"

// Mailer delivers verification mail. Delivery failure must never fail the
// registration that triggered it.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, token string) error
}
