package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hrflow/internal/app/server"
	"hrflow/internal/platform/db"
)

type MigrateOptions struct {
	*RootOptions
	Dir string
}

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			server.ConfigureLogging(cfg)
			if opts.Dir != "" {
				cfg.MigrationsDir = opts.Dir
			}

			ctx := cmd.Context()
			pool, err := db.Connect(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			slog.Info("migrations applied", "dir", cfg.MigrationsDir)
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "migrations directory (overrides MIGRATIONS_DIR)")

	return cmd
}
