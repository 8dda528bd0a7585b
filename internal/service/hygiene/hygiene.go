package hygiene

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Service runs idempotent maintenance passes over the entries table. Each
// pass may be re-run at any time; a second run finds nothing left to touch.
type Service struct {
	db  *sqlx.DB
	log *zap.Logger
}

func New(db *sqlx.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// NormalizeNotes NULLs out placeholder notes: any case-insensitive
// "Gesamtsumme" variant (with optional trailing punctuation) and notes that
// are blank after trimming. Returns the number of rows changed.
func (s *Service) NormalizeNotes(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE entries
		   SET note = NULL
		 WHERE note IS NOT NULL
		   AND (
		        note ILIKE 'gesamtsumme'
		     OR note ILIKE 'gesamtsumme.'
		     OR note ILIKE '%gesamtsumme %'
		     OR note ILIKE '%gesamtsumme'
		   )
	`)
	if err != nil {
		return 0, fmt.Errorf("clear placeholder notes: %w", err)
	}
	placeholders, _ := res.RowsAffected()

	res, err = s.db.ExecContext(ctx, `
		UPDATE entries
		   SET note = NULL
		 WHERE note IS NOT NULL AND btrim(note) = ''
	`)
	if err != nil {
		return 0, fmt.Errorf("clear blank notes: %w", err)
	}
	blanks, _ := res.RowsAffected()

	var remaining int
	if err := s.db.GetContext(ctx, &remaining, `
		SELECT COUNT(*) FROM entries WHERE note ILIKE '%gesamtsumme%'
	`); err != nil {
		return 0, fmt.Errorf("count remaining placeholders: %w", err)
	}

	s.log.Info("note normalization done",
		zap.Int64("placeholders", placeholders),
		zap.Int64("blanks", blanks),
		zap.Int("remaining_matches", remaining),
	)
	return placeholders + blanks, nil
}

// CollapseDuplicates deletes entries that duplicate another entry on
// (customer, date, amount, note with NULL folded to empty). The lowest id in
// each duplicate group survives, so repeated runs are deterministic.
func (s *Service) CollapseDuplicates(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM entries e
		 USING entries d
		 WHERE e.id > d.id
		   AND e.customer_id = d.customer_id
		   AND e.date = d.date
		   AND e.amount = d.amount
		   AND COALESCE(e.note, '') = COALESCE(d.note, '')
	`)
	if err != nil {
		return 0, fmt.Errorf("delete duplicate entries: %w", err)
	}
	deleted, _ := res.RowsAffected()

	s.log.Info("duplicate collapse done", zap.Int64("deleted", deleted))
	return deleted, nil
}
