package seed

import (
	"context"
	"time"

	"github.com/skillshare/skillshare/internal/config"
	"github.com/skillshare/skillshare/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lockTTL = time.Minute

type params struct {
	fx.In

	DB      *gorm.DB
	Cfg     config.Config
	Log     *zap.Logger
	Limiter *ratelimit.Limiter `optional:"true"`
}

var Module = fx.Module("seed",
	fx.Invoke(run),
)

func run(p params) error {
	log := p.Log.Named("seed")

	// Only one replica seeds when several start against a shared database.
	ctx := context.Background()
	lock, ok, err := p.Limiter.TryLock(ctx, "seed", lockTTL)
	if err != nil {
		return err
	}
	if !ok {
		log.Info("another replica is seeding, skipping")
		return nil
	}
	defer func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil {
			log.Warn("failed to release seed lock", zap.Error(releaseErr))
		}
	}()

	if err := EnsureCatalog(p.DB); err != nil {
		return err
	}

	if p.Cfg.IsProduction() {
		return nil
	}

	log.Info("seeding demo accounts", zap.String("password", demoPassword))
	return EnsureDemoAccounts(p.DB)
}
