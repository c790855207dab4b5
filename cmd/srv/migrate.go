package main

import (
	"github.com/groove-lab/backend/migration"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	switch {
	case cctx.Bool("rollback"):
		xcontext.Logger(s.ctx).Infof("Rolling back database migrations")
		return migration.Rollback(s.ctx)
	case cctx.Bool("auto"):
		xcontext.Logger(s.ctx).Infof("Auto migrating database tables")
		return migration.AutoMigrate(s.ctx)
	default:
		xcontext.Logger(s.ctx).Infof("Applying database migrations")
		return migration.Migrate(s.ctx)
	}
}
