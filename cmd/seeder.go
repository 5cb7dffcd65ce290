package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	authPostgres "github.com/frahmantamala/leaveflow/internal/auth/postgres"
	auditDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/audit"
	leaveDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const seedPassword = "password"

var seedUsers = []auth.RegisterDTO{
	{Email: "manager@leaveflow.local", Password: seedPassword, Role: auth.RoleManager},
	{Email: "employee@leaveflow.local", Password: seedPassword, Role: auth.RoleEmployee},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a manager and an employee account for development and testing purposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lg, err := setup()
		if err != nil {
			return err
		}

		db, sqlDB, err := initDB(cfg.Database, lg)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer sqlDB.Close()

		if clearData {
			if err := clearTables(db); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}
			fmt.Println("Cleared users, leave requests and audit logs")
		}

		authService := auth.NewService(authPostgres.NewRepository(db), nil, cfg.Security.BCryptCost, lg)
		return seed(cmd.Context(), authService)
	},
}

// seed registers each account through the auth service, skipping existing ones.
func seed(ctx context.Context, svc *auth.Service) error {
	for _, dto := range seedUsers {
		if _, err := svc.Register(ctx, dto); err != nil {
			if errors.Is(err, internal.ErrEmailTaken) {
				fmt.Println("user already exists:", dto.Email)
				continue
			}
			return fmt.Errorf("seed %s: %w", dto.Email, err)
		}
		fmt.Printf("Seeded %s user: %s\n", dto.Role, dto.Email)
	}
	return nil
}

func clearTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&auditDatamodel.AuditLog{}, &leaveDatamodel.LeaveRequest{}, &userDatamodel.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
