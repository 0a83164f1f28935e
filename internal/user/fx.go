package user

import (
	"github.com/skillshare/skillshare/internal/user/repository"
	"github.com/skillshare/skillshare/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
