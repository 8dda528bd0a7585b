package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/config"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and seed the instructor roster (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewPostgresConnection(cfg.Postgres.DSN, db.PostgresOpts{
			MaxOpenConns:       cfg.Postgres.MaxOpenConns,
			MaxIdleConns:       cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime:    cfg.Postgres.ConnMaxLifetime,
			ConnMaxIdleTime:    cfg.Postgres.ConnMaxIdleTime,
			PingTimeout:        cfg.Postgres.PingTimeout,
			InsecureSkipVerify: cfg.Postgres.InsecureSkipVerify,
		})
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlDB.Close()

		sqlPath := filepath.Join("migrations", "001_init.sql")
		sqlBytes, err := os.ReadFile(sqlPath)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", sqlPath, err)
		}

		if _, err := sqlDB.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}

		fmt.Println(">> Migration complete")
		return nil
	},
}
