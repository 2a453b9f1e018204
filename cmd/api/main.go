package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"user-post-service/cmd/api/app"
	"user-post-service/cmd/api/infrastructure"
	"user-post-service/cmd/api/server"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "user-post-service",
		Short:        "Users and posts REST API",
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := server.WithSignal(cmd.Context())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and posts tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation failed: %w", err)
			}

			l, err := app.InitLogger(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = l.Sync() }()

			cfg.DB.AutoMigrate = false
			db, err := infrastructure.NewDatabase(cfg, l)
			if err != nil {
				return err
			}
			defer func() {
				if err := infrastructure.CloseDatabase(db); err != nil {
					l.Error("failed to close database", zap.Error(err))
				}
			}()

			return infrastructure.Migrate(db.WithContext(cmd.Context()), l)
		},
	}
}
