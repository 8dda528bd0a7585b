package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
)

type MinutesRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Minute, error)
	SumMinutes(ctx context.Context, customerID int64) (int, error)
	Insert(ctx context.Context, m model.Minute) (*model.Minute, error)
	Update(ctx context.Context, id int64, m model.Minute) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type MinutesRepositoryImpl struct {
	db *sqlx.DB
}

func NewMinutesRepository(db *sqlx.DB) *MinutesRepositoryImpl {
	return &MinutesRepositoryImpl{db: db}
}

var _ MinutesRepository = (*MinutesRepositoryImpl)(nil)

func (r *MinutesRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Minute, error) {
	minutes := []model.Minute{}
	err := r.db.SelectContext(ctx, &minutes, `
		SELECT id, customer_id, taetigkeit, minuten, fahrlehrer, datum
		  FROM minutes
		 WHERE customer_id = $1
		 ORDER BY datum DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	return minutes, nil
}

func (r *MinutesRepositoryImpl) SumMinutes(ctx context.Context, customerID int64) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(minuten), 0) FROM minutes WHERE customer_id = $1
	`, customerID)
	return total, err
}

func (r *MinutesRepositoryImpl) Insert(ctx context.Context, m model.Minute) (*model.Minute, error) {
	var out model.Minute
	err := r.db.GetContext(ctx, &out, `
		INSERT INTO minutes (customer_id, taetigkeit, minuten, fahrlehrer, datum)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, taetigkeit, minuten, fahrlehrer, datum
	`, m.CustomerID, m.Taetigkeit, m.Minuten, m.Fahrlehrer, m.Datum)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update reports whether a row with the given id existed.
func (r *MinutesRepositoryImpl) Update(ctx context.Context, id int64, m model.Minute) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE minutes
		   SET datum = $1, taetigkeit = $2, minuten = $3, fahrlehrer = $4
		 WHERE id = $5
	`, m.Datum, m.Taetigkeit, m.Minuten, m.Fahrlehrer, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MinutesRepositoryImpl) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM minutes WHERE id = $1`, id)
	return err
}
