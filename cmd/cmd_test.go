package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testConfig = `http_server:
  port: 8080
database:
  driver: sqlite
  source: %s
  max_open_conns: 1
  max_idle_conns: 1
security:
  jwt_secret: a-test-secret-that-is-long-enough-123
  jwt_issuer: leaveflow
  jwt_audience: leaveflow-ui
  access_token_duration: 60m
  bcrypt_cost: 10
logging:
  level: debug
  format: text
`

var _ = Describe("Commands", func() {
	var (
		dir       string
		dbPath    string
		prevPath  string
		prevClear bool
	)

	BeforeEach(func() {
		Expect(os.Unsetenv("APP_ENV")).To(Succeed())
		Expect(os.Unsetenv("DOCKER_ENV")).To(Succeed())

		dir = GinkgoT().TempDir()
		dbPath = filepath.Join(dir, "leaveflow.db")
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(fmt.Sprintf(testConfig, dbPath)), 0o600)).To(Succeed())

		prevPath, prevClear = configPath, clearData
		configPath, clearData = dir, false
		DeferCleanup(func() {
			configPath, clearData = prevPath, prevClear
		})

		for _, c := range []interface{ SetContext(context.Context) }{seedCmd, migrateCmd, deleteUserCmd} {
			c.SetContext(context.Background())
		}
	})

	Describe("setup", func() {
		It("should configure the logger from the loaded config", func() {
			cfg, lg, err := setup()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Database.GetDriver()).To(Equal("sqlite"))
			Expect(lg.Enabled(context.Background(), slog.LevelDebug)).To(BeTrue())
		})

		It("should return an error instead of exiting when the config is missing", func() {
			configPath = GinkgoT().TempDir()

			_, _, err := setup()

			Expect(err).To(MatchError(ContainSubstring("failed to load config")))
		})
	})

	Describe("seed", func() {
		It("should report a missing config as an error", func() {
			configPath = GinkgoT().TempDir()

			Expect(seedCmd.RunE(seedCmd, nil)).To(MatchError(ContainSubstring("failed to load config")))
		})

		It("should seed both accounts once and skip them on a second run", func() {
			Expect(runMigration(migrateCmd, nil)).To(Succeed())

			Expect(seedCmd.RunE(seedCmd, nil)).To(Succeed())
			Expect(seedCmd.RunE(seedCmd, nil)).To(Succeed())

			db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
			Expect(err).NotTo(HaveOccurred())
			sqlDB, err := db.DB()
			Expect(err).NotTo(HaveOccurred())
			defer sqlDB.Close()

			var count int64
			Expect(db.Model(&userDatamodel.User{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(len(seedUsers))))
		})
	})

	Describe("user delete", func() {
		It("should reject a malformed id", func() {
			err := deleteUserCmd.RunE(deleteUserCmd, []string{"not-a-uuid"})

			Expect(err).To(MatchError(ContainSubstring("invalid user id")))
		})

		It("should report a missing config as an error", func() {
			configPath = GinkgoT().TempDir()

			err := deleteUserCmd.RunE(deleteUserCmd, []string{"6f1c2a1e-6b59-4d6e-9a7c-7b1b8a0f2c11"})

			Expect(err).To(MatchError(ContainSubstring("failed to load config")))
		})
	})
})
