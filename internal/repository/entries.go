package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
)

type EntriesRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Entry, error)
	SumByCustomer(ctx context.Context, customerID int64) (float64, error)
	Insert(ctx context.Context, tx *sqlx.Tx, e model.Entry) (*model.Entry, error)
	Update(ctx context.Context, id int64, e model.Entry) (*model.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type EntriesRepositoryImpl struct {
	db *sqlx.DB
}

func NewEntriesRepository(db *sqlx.DB) *EntriesRepositoryImpl {
	return &EntriesRepositoryImpl{db: db}
}

var _ EntriesRepository = (*EntriesRepositoryImpl)(nil)

func (r *EntriesRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Entry, error) {
	entries := []model.Entry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, customer_id, date, amount, note, fahrlehrer_id
		  FROM entries
		 WHERE customer_id = $1
		 ORDER BY date DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByCustomer returns 0 for a customer with no entries, never NULL.
func (r *EntriesRepositoryImpl) SumByCustomer(ctx context.Context, customerID int64) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0) FROM entries WHERE customer_id = $1
	`, customerID)
	return total, err
}

func (r *EntriesRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, e model.Entry) (*model.Entry, error) {
	const q = `
		INSERT INTO entries (customer_id, date, amount, note, fahrlehrer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, date, amount, note, fahrlehrer_id
	`
	var out model.Entry
	err := r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &out, q, e.CustomerID, e.Date, e.Amount, e.Note, e.FahrlehrerID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites date, amount, note and instructor of an entry. Returns
// nil when the id does not exist.
func (r *EntriesRepositoryImpl) Update(ctx context.Context, id int64, e model.Entry) (*model.Entry, error) {
	var out model.Entry
	err := r.db.GetContext(ctx, &out, `
		UPDATE entries
		   SET date = $1, amount = $2, note = $3, fahrlehrer_id = $4
		 WHERE id = $5
		RETURNING id, customer_id, date, amount, note, fahrlehrer_id
	`, e.Date, e.Amount, e.Note, e.FahrlehrerID, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete is a no-op for ids that do not exist.
func (r *EntriesRepositoryImpl) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	return err
}

func (r *EntriesRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}
