package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/portfolio-backend/internal/app"
	"github.com/yungbote/portfolio-backend/internal/data/db"
	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/services"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site API and admin CMS",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply schema migrations and exit",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed-sections",
			Short: "Insert the default sections when the table is empty",
			RunE:  runSeedSections,
		},
		createAdminCmd(),
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	log, cfg, err := app.Bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	_, closeDB, err := app.OpenDatabase(log, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	log.Info("Migrations applied", "driver", cfg.Database.Driver)
	return nil
}

func runSeedSections(cmd *cobra.Command, _ []string) error {
	log, cfg, err := app.Bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	theDB, closeDB, err := app.OpenDatabase(log, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := db.SeedSections(cmd.Context(), theDB, sections.DefaultOrder)
	if err != nil {
		return err
	}
	log.Info("Seeded sections", "inserted", n)
	return nil
}

func createAdminCmd() *cobra.Command {
	var email, password, first, last string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user, or promote and reset an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateAdmin(cmd.Context(), email, password, first, last)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&last, "last", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runCreateAdmin(ctx context.Context, email, password, first, last string) error {
	log, cfg, err := app.Bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	theDB, closeDB, err := app.OpenDatabase(log, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	auth := services.NewAuthService(theDB, log,
		repos.NewUserRepo(theDB, log), repos.NewUserTokenRepo(theDB, log),
		cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	user, err := auth.CreateAdmin(ctx, email, password, first, last)
	if err != nil {
		return err
	}
	log.Info("Admin ready", "user_id", user.ID, "email", user.Email)
	return nil
}
