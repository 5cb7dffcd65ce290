package cmd

import (
	"fmt"

	"github.com/frahmantamala/leaveflow/internal/user"
	userPostgres "github.com/frahmantamala/leaveflow/internal/user/postgres"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User administration commands",
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete [user-id]",
	Short: "Delete a user and every leave request it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		cfg, lg, err := setup()
		if err != nil {
			return err
		}

		db, sqlDB, err := initDB(cfg.Database, lg)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer sqlDB.Close()

		svc := user.NewService(userPostgres.NewUserRepository(db), lg)
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted user:", id)
		return nil
	},
}

func init() {
	userCmd.AddCommand(deleteUserCmd)
}
