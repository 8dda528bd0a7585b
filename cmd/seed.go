package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/config"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/db"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers and entries",
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
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo customers...")

		if err := seedDemoData(cmd.Context(), sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

type demoCustomer struct {
	name    string
	entries []model.Entry
}

// seedDemoData inserts deterministic demo data. Entries are written only
// when the customer did not exist yet, so re-running the seed is a no-op.
func seedDemoData(ctx context.Context, dbx *sqlx.DB) error {
	customers := repository.NewCustomersRepository(dbx)
	entries := repository.NewEntriesRepository(dbx)
	instructors := repository.NewInstructorsRepository(dbx)

	hasiebID, err := instructors.IDByName(ctx, "Hasieb")
	if err != nil {
		return fmt.Errorf("roster not seeded, run migrate first: %w", err)
	}

	demo := []demoCustomer{
		{
			name: "Max Mustermann",
			entries: []model.Entry{
				{Date: model.NewDate(2024, 1, 5), Amount: 55.00, FahrlehrerID: &hasiebID},
				{Date: model.NewDate(2024, 1, 12), Amount: 110.00, FahrlehrerID: &hasiebID},
			},
		},
		{
			name: "Erika Musterfrau",
			entries: []model.Entry{
				{Date: model.NewDate(2024, 2, 1), Amount: 55.00},
			},
		},
		{
			name:    "Leerer Kunde",
			entries: nil,
		},
	}

	for _, dc := range demo {
		id, created, err := customers.FindOrCreate(ctx, nil, dc.name)
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", dc.name, err)
		}
		if !created {
			continue
		}
		for _, e := range dc.entries {
			e.CustomerID = id
			if _, err := entries.Insert(ctx, nil, e); err != nil {
				return fmt.Errorf("seed entry for %q: %w", dc.name, err)
			}
		}
	}
	return nil
}
