package cmd

import (
	"fmt"

	migrations "github.com/frahmantamala/leaveflow/db"
	"github.com/frahmantamala/leaveflow/internal/core/datamodel"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded sql migrations under db/migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, lg, err := setup()
	if err != nil {
		return err
	}

	// the SQL files target postgres; sqlite schemas come from the models
	if cfg.Database.GetDriver() == "sqlite" {
		gdb, sqlDB, err := initDB(cfg.Database, lg)
		if err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		defer sqlDB.Close()
		if err := gdb.AutoMigrate(datamodel.Models()...); err != nil {
			return fmt.Errorf("sqlite automigrate: %w", err)
		}
		lg.Info("sqlite schema up to date")
		return nil
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	command := "up"
	if migrateRollback {
		command = "down"
	}

	if err := goose.RunContext(ctx, command, db, migrations.MigrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
