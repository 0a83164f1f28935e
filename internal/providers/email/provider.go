// Package email delivers account lifecycle mail. Delivery is best effort:
// callers log failures and carry on.
package email

import "context"

type Provider interface {
	SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, to, name, resetURL string) error
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

// NoOpProvider is used when no SMTP host is configured.
type NoOpProvider struct{}

func (p *NoOpProvider) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	return nil
}

func (p *NoOpProvider) SendPasswordResetEmail(ctx context.Context, to, name, resetURL string) error {
	return nil
}

func (p *NoOpProvider) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return nil
}
