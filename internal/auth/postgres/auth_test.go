package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	authPostgres "github.com/frahmantamala/leaveflow/internal/auth/postgres"
	"github.com/frahmantamala/leaveflow/internal/core/datamodel"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo auth.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(datamodel.Models()...)).To(Succeed())

		repo = authPostgres.NewRepository(db)
	})

	Describe("Create", func() {
		It("should persist a new user", func() {
			user := &auth.User{
				ID:           uuid.New(),
				Email:        "alice@example.com",
				PasswordHash: "hash",
				Role:         auth.RoleEmployee,
				CreatedAt:    time.Now().UTC(),
			}

			Expect(repo.Create(ctx, user)).To(Succeed())

			found, err := repo.GetByEmail(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(user.ID))
			Expect(found.Role).To(Equal(auth.RoleEmployee))
			Expect(found.PasswordHash).To(Equal("hash"))
		})

		It("should report a duplicate email as taken", func() {
			first := &auth.User{Email: "dup@example.com", PasswordHash: "hash", Role: auth.RoleEmployee}
			Expect(repo.Create(ctx, first)).To(Succeed())
			Expect(first.ID).NotTo(Equal(uuid.Nil))

			second := &auth.User{Email: "dup@example.com", PasswordHash: "hash", Role: auth.RoleManager}
			err := repo.Create(ctx, second)
			Expect(errors.Is(err, internal.ErrEmailTaken)).To(BeTrue())
		})
	})

	Describe("GetByEmail", func() {
		It("should return user not found for unknown emails", func() {
			_, err := repo.GetByEmail(ctx, "ghost@example.com")
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})
})
