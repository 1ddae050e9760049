package main

import (
	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/migration"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadDatabase()
	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrated %s database", xcontext.Configs(s.ctx).Database.Driver)
	return nil
}
