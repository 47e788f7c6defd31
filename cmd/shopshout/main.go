package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/config"
	"github.com/shopshout/shopshout/internal/migration"
	"github.com/shopshout/shopshout/internal/observability"
	"github.com/shopshout/shopshout/internal/seo"
	"github.com/shopshout/shopshout/internal/server"
	"github.com/shopshout/shopshout/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		seo.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
