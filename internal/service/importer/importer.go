package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/metrics"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/util"
)

// totalNote tags the secondary entry written for a grand-total column that
// differs from the row amount.
const totalNote = "Gesamtsumme"

// customerResolver and entryWriter are the two repository slices the import
// needs; both must honor the transaction they are handed.
type customerResolver interface {
	FindOrCreate(ctx context.Context, tx *sqlx.Tx, fullName string) (int64, bool, error)
}

type entryWriter interface {
	Insert(ctx context.Context, tx *sqlx.Tx, e model.Entry) (*model.Entry, error)
}

// txRunner runs fn inside one transaction, committing only when fn returns
// nil.
type txRunner interface {
	InTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type dbTxRunner struct{ db *sqlx.DB }

func (r dbTxRunner) InTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Importer seeds customers and entries from a spreadsheet export in a single
// all-or-nothing transaction. A partial import would be worse than a clean
// failure plus retry.
type Importer struct {
	db        txRunner
	customers customerResolver
	entries   entryWriter
	log       *zap.Logger
}

func New(db *sqlx.DB, customers customerResolver, entries entryWriter, log *zap.Logger) *Importer {
	return &Importer{db: dbTxRunner{db: db}, customers: customers, entries: entries, log: log}
}

// entryPlan is one insert the apply stage will perform for a row.
type entryPlan struct {
	Amount  float64
	Note    *string
	Counted bool // primary row amounts count toward the reported total
}

// planEntries decides what a parsed row inserts: the row amount when it
// parsed, plus a second record tagged "Gesamtsumme" when the grand-total
// column is present and differs from the row amount. Rows without a usable
// date insert nothing (their customer is still resolved).
func planEntries(row Row) []entryPlan {
	if row.Date == "" {
		return nil
	}
	var plans []entryPlan
	if row.Amount != nil {
		plans = append(plans, entryPlan{Amount: *row.Amount, Note: row.Note, Counted: true})
	}
	if row.Total != nil && (row.Amount == nil || *row.Total != *row.Amount) {
		note := totalNote
		plans = append(plans, entryPlan{Amount: *row.Total, Note: &note})
	}
	return plans
}

// Run parses the file and applies it inside one transaction. Returns the
// number of entries inserted. Any database error rolls back the whole run.
func (im *Importer) Run(ctx context.Context, path string) (int, error) {
	runID := util.New()
	log := im.log.With(zap.String("run_id", runID), zap.String("file", path))

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Info("import parsed", zap.Int("rows", len(rows)))

	inserted, created, err := im.apply(ctx, rows)
	if err != nil {
		return 0, err
	}

	// counters move only once the transaction has committed
	metrics.CustomersCreated.Add(float64(created))
	metrics.EntriesWritten.WithLabelValues("import").Add(float64(inserted))
	log.Info("import committed", zap.Int("entries", inserted), zap.Int("customers_created", created))
	return inserted, nil
}

// apply writes all rows in one transaction, resolving each customer name at
// most once per run via a memo local to the call.
func (im *Importer) apply(ctx context.Context, rows []Row) (inserted, created int, err error) {
	err = im.db.InTx(ctx, func(tx *sqlx.Tx) error {
		memo := map[string]int64{}
		for _, row := range rows {
			customerID, ok := memo[row.FullName]
			if !ok {
				var isNew bool
				var err error
				customerID, isNew, err = im.customers.FindOrCreate(ctx, tx, row.FullName)
				if err != nil {
					return fmt.Errorf("resolve customer %q: %w", row.FullName, err)
				}
				if isNew {
					created++
				}
				memo[row.FullName] = customerID
			}

			plans := planEntries(row)
			if len(plans) == 0 {
				continue
			}
			date, err := model.ParseDate(row.Date)
			if err != nil {
				continue
			}
			for _, p := range plans {
				_, err := im.entries.Insert(ctx, tx, model.Entry{
					CustomerID: customerID,
					Date:       date,
					Amount:     p.Amount,
					Note:       p.Note,
				})
				if err != nil {
					return fmt.Errorf("insert entry for %q: %w", row.FullName, err)
				}
				if p.Counted {
					inserted++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, created, nil
}
