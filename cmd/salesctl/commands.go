package main

import (
	"errors"
	"fmt"
	"os"

	"salelog/internal/config"
	"salelog/internal/infra"
	"salelog/internal/router"
	"salelog/internal/service"
	"salelog/internal/worker"

	"github.com/spf13/cobra"
)

// openServices loads config and connects to Postgres only; commands that
// need Redis connect to it themselves.
func openServices() (*config.Config, *router.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return cfg, router.NewServices(cfg, db, nil, nil), nil
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print totals, hourly series, products and shifts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svcs, err := openServices()
			if err != nil {
				return err
			}
			rep, now, err := svcs.Sales.Report(cmd.Context())
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), service.DashboardFrom(rep, now.In(cfg.Location())))
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every sale to a CSV or XLSX file in export order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svcs, err := openServices()
			if err != nil {
				return err
			}
			file, err := svcs.Sales.Export(cmd.Context(), format)
			if err != nil {
				return err
			}
			if out == "" {
				out = file.Name
			}
			if err := os.WriteFile(out, file.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(file.Data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", service.FormatCSV, "csv or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default: EXPORT_FILENAME)")
	return cmd
}

func seedAdminCmd() *cobra.Command {
	var username, name, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Migrate, create or reset an admin account and seed the default catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if len(password) < 4 {
				return errors.New("password must be at least 4 characters (--password or ADMIN_PASSWORD)")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := infra.NewDatabase(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			if err := infra.RunMigrations(db); err != nil {
				return err
			}
			svcs := router.NewServices(cfg, db, nil, nil)
			if err := svcs.Auth.SeedAdmin(cmd.Context(), username, name, password); err != nil {
				return err
			}
			n, err := svcs.Items.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q ready, %d catalog items created\n", username, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "login name")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password (default: $ADMIN_PASSWORD)")
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash stored for a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func dlqCmd() *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "List dead-lettered handover jobs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			rdb, err := infra.NewRedis(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("connect to redis: %w", err)
			}
			defer rdb.Close()

			entries, err := worker.DLQEntries(cmd.Context(), rdb, worker.QueueHandover, limit)
			if err != nil {
				return err
			}
			renderDLQ(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 20, "maximum entries to show")
	return cmd
}
