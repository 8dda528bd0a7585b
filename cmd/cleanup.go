package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/config"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/db"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/logger"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/service/hygiene"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Idempotent data hygiene passes",
}

var cleanupNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "NULL out placeholder and blank notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHygiene(func(svc *hygiene.Service) (int64, error) {
			return svc.NormalizeNotes(cmd.Context())
		}, "notes normalized")
	},
}

var cleanupDuplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Delete exact-duplicate entries, keeping the lowest id",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHygiene(func(svc *hygiene.Service) (int64, error) {
			return svc.CollapseDuplicates(cmd.Context())
		}, "duplicates deleted")
	},
}

func init() {
	cleanupCmd.AddCommand(cleanupNotesCmd)
	cleanupCmd.AddCommand(cleanupDuplicatesCmd)
}

func runHygiene(pass func(*hygiene.Service) (int64, error), what string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	sqlDB, err := openPostgres(cfg)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer sqlDB.Close()

	affected, err := pass(hygiene.New(sqlDB, logger.Log))
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	fmt.Printf(">> Cleanup complete (%d %s)\n", affected, what)
	return nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	return db.NewPostgresConnection(cfg.Postgres.DSN, db.PostgresOpts{
		MaxOpenConns:       cfg.Postgres.MaxOpenConns,
		MaxIdleConns:       cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime:    cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Postgres.ConnMaxIdleTime,
		PingTimeout:        cfg.Postgres.PingTimeout,
		InsecureSkipVerify: cfg.Postgres.InsecureSkipVerify,
	})
}
