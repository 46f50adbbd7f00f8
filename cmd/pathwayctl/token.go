package main

import (
	"fmt"

	"pathway/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(tokenUser)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			cfg, _, err := loadConfig(true)
			if err != nil {
				return err
			}
			if cfg.App.Environment == "production" {
				return fmt.Errorf("refusing to mint tokens in production")
			}

			tok, err := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn).GenerateAccessToken(userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id")
	_ = tokenCmd.MarkFlagRequired("user")
}
