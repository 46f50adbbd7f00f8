package main

import (
	"context"
	"time"

	"pathway/internal/app"
	"pathway/internal/database/migration"
	"pathway/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		return withContainer(ctx, func(c *app.Container) error {
			ran, err := migration.Runner{Source: migrations.FS}.Run(ctx, c.DB.SQLDB())
			if err != nil {
				return err
			}
			for _, m := range ran {
				c.Logger.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
			}
			if len(ran) == 0 {
				c.Logger.Info("schema up to date")
			}
			return nil
		})
	},
}
