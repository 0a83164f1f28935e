package auth

import (
	"github.com/bwmarrin/snowflake"
	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/auth/repository"
	"github.com/skillshare/skillshare/internal/auth/service"
	"github.com/skillshare/skillshare/internal/auth/token"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/skillshare/skillshare/internal/config"
	"github.com/skillshare/skillshare/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("auth",
	fx.Provide(repository.New),
	fx.Provide(newCodec),
	fx.Provide(newService),
)

func newCodec(cfg config.Config, clk clock.Clock, log *zap.Logger) (*token.Codec, error) {
	if cfg.UsingDevSecret {
		log.Named("auth").Warn("AUTH_TOKEN_SECRET is unset, using the development signing secret")
	}
	return token.NewCodec(cfg.AuthTokenSecret, clk)
}

func newService(
	log *zap.Logger,
	repo domain.Repository,
	codec *token.Codec,
	mailer email.Provider,
	clk clock.Clock,
	genID *snowflake.Node,
	cfg config.Config,
) domain.Service {
	return service.New(log, repo, codec, mailer, clk, genID, cfg.AuthSessionTTL, cfg.FrontendURL)
}
