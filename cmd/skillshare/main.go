package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/skillshare/skillshare/internal/config"
	"github.com/skillshare/skillshare/internal/migration"
	"github.com/skillshare/skillshare/internal/observability"
	"github.com/skillshare/skillshare/internal/seed"
	"github.com/skillshare/skillshare/internal/server"
	"github.com/skillshare/skillshare/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		server.Module,
		migration.Module,
		seed.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
