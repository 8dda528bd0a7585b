package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/config"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/db"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/logger"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/service/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import a ledger CSV export in one transaction",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)

		file := cfg.Import.File
		if len(args) == 1 {
			file = args[0]
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
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer sqlDB.Close()

		im := importer.New(
			sqlDB,
			repository.NewCustomersRepository(sqlDB),
			repository.NewEntriesRepository(sqlDB),
			logger.Log,
		)

		count, err := im.Run(cmd.Context(), file)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Printf(">> Import complete (%d entries inserted)\n", count)
		return nil
	},
}
