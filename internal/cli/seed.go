package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hrflow/internal/app/server"
	"hrflow/internal/domain/auth"
	"hrflow/internal/platform/db"
)

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the admin account and default job templates",
		Long: `Load seed data. The admin account is created only when SEED_ADMIN_EMAIL
and SEED_ADMIN_PASSWORD are set. Existing rows are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			server.ConfigureLogging(cfg)

			ctx := cmd.Context()
			pool, err := db.Connect(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			if err := db.Seed(ctx, pool, cfg, auth.HashPassword); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			slog.Info("seed data loaded")
			fmt.Fprintln(cmd.OutOrStdout(), "seed data loaded")
			return nil
		},
	}
	return cmd
}
