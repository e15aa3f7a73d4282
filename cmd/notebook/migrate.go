package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notebook/internal/notebook/db"
	"notebook/pkg/logger"
)

func newMigrateCmd(c *cli) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := db.Migrate(ctx, &c.cfg.Postgres); err != nil {
				logger.Log(ctx).Error(ctx, db.ErrDBMigrations, zap.Error(err))
				return err
			}
			return nil
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := db.Rollback(ctx, &c.cfg.Postgres, steps); err != nil {
				logger.Log(ctx).Error(ctx, db.ErrDBRollback, zap.Error(err))
				return err
			}
			return nil
		},
	}
	downCmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}
