package migration

import (
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/config"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	userdomain "github.com/skillshare/skillshare/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations target postgres. The mysql and sqlite
		// setups are for local development and use the model schema
		// directly.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&authdomain.User{},
				&skilldomain.Skill{},
				&userdomain.UserSkill{},
				&userdomain.UserInterest{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
