package email

import (
	"context"

	obsmetrics "github.com/skillshare/skillshare/internal/observability/metrics"
)

// instrumentedProvider counts outbound mail per template and outcome.
type instrumentedProvider struct {
	next    Provider
	metrics *obsmetrics.Metrics
}

func withMetrics(next Provider, m *obsmetrics.Metrics) Provider {
	if m == nil {
		return next
	}
	return &instrumentedProvider{next: next, metrics: m}
}

func (p *instrumentedProvider) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	return p.record("verify_email", p.next.SendVerificationEmail(ctx, to, name, verifyURL))
}

func (p *instrumentedProvider) SendPasswordResetEmail(ctx context.Context, to, name, resetURL string) error {
	return p.record("reset_password", p.next.SendPasswordResetEmail(ctx, to, name, resetURL))
}

func (p *instrumentedProvider) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return p.record("welcome", p.next.SendWelcomeEmail(ctx, to, name))
}

func (p *instrumentedProvider) record(template string, err error) error {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	p.metrics.RecordEmail(template, outcome)
	return err
}
