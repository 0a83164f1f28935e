package skill

import (
	"github.com/skillshare/skillshare/internal/skill/repository"
	"github.com/skillshare/skillshare/internal/skill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("skill",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
