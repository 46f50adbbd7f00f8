package main

import (
	"context"
	"fmt"

	"pathway/internal/app"
	"pathway/internal/config"
	"pathway/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "pathwayctl"

var (
	v = config.NewViper()

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "pathwayctl runs schema migrations, seeds demo data and scores careers from the shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	return err
}

func init() {
	v.SetDefault("APP_NAME", appName)
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("HTTP_PORT", "0")

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(migrateCmd, seedCmd, scoreCmd, tokenCmd)
}

// loadConfig builds the config for commands that never issue tokens, so the JWT secret may be
// absent.
func loadConfig(needSecret bool) (config.Config, *zap.Logger, error) {
	if !needSecret {
		v.SetDefault("JWT_ACCESS_SECRET", "unused")
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, l.Named(appName), nil
}

func withContainer(ctx context.Context, fn func(c *app.Container) error) error {
	cfg, l, err := loadConfig(false)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	c, err := app.NewContainer(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			l.Warn("close", zap.Error(err))
		}
	}()
	return fn(c)
}

