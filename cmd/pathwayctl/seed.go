package main

import (
	"context"
	"time"

	"pathway/internal/app"
	"pathway/internal/database/seeder"
	"pathway/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo occupation catalog and demo student",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		return withContainer(ctx, func(c *app.Container) error {
			r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
			if err := r.Run(ctx, c.DB); err != nil {
				return err
			}

			// Occupation data changed, so every cached breakdown may be stale.
			n, err := c.Cache.DeleteByPattern(ctx, usecase.ConvictionCachePattern())
			if err != nil {
				c.Logger.Warn("cache flush failed", zap.Error(err))
			}
			c.Logger.Info("seed complete",
				zap.String("demo_student", seeder.DemoStudentID.String()),
				zap.Int("cache_keys_flushed", n),
			)
			return nil
		})
	},
}
