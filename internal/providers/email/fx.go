package email

import (
	"github.com/skillshare/skillshare/internal/config"
	obsmetrics "github.com/skillshare/skillshare/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger, m *obsmetrics.Metrics) (Provider, error) {
	if cfg.SMTPHost == "" {
		log.Named("providers.email").Info("no smtp host configured, outbound mail disabled")
		return &NoOpProvider{}, nil
	}
	smtp, err := NewSMTP(Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		AppName:  cfg.AppName,
	})
	if err != nil {
		return nil, err
	}
	return withMetrics(smtp, m), nil
}
