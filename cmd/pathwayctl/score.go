package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pathway/internal/app"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	scoreUser       string
	scoreOccupation string
	scoreNoCache    bool

	scoreCmd = &cobra.Command{
		Use:   "score",
		Short: "Print the conviction breakdown of a user for one occupation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(scoreUser)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return withContainer(ctx, func(c *app.Container) error {
				get := c.Convictions.Get
				if scoreNoCache {
					get = c.Engine.Compute
				}
				b, err := get(ctx, userID, scoreOccupation)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"breakdown": b})
			})
		},
	}
)

func init() {
	scoreCmd.Flags().StringVar(&scoreUser, "user", "", "user id")
	scoreCmd.Flags().StringVar(&scoreOccupation, "occupation", "", "O*NET occupation code")
	scoreCmd.Flags().BoolVar(&scoreNoCache, "no-cache", false, "compute directly, skipping the user check and cache")
	_ = scoreCmd.MarkFlagRequired("user")
	_ = scoreCmd.MarkFlagRequired("occupation")
}
