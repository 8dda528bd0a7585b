package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
)

type InstructorsRepository interface {
	List(ctx context.Context) ([]model.Instructor, error)
	IDByName(ctx context.Context, name string) (int64, error)
	CustomersOf(ctx context.Context, instructorID int64) ([]model.Customer, error)
}

type InstructorsRepositoryImpl struct {
	db *sqlx.DB
}

func NewInstructorsRepository(db *sqlx.DB) *InstructorsRepositoryImpl {
	return &InstructorsRepositoryImpl{db: db}
}

var _ InstructorsRepository = (*InstructorsRepositoryImpl)(nil)

// List returns the roster in the fixed display order. Ordering is applied
// in application code, not in SQL, so storage order stays irrelevant.
func (r *InstructorsRepositoryImpl) List(ctx context.Context) ([]model.Instructor, error) {
	instructors := []model.Instructor{}
	err := r.db.SelectContext(ctx, &instructors, `
		SELECT id, name FROM instructors ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	model.SortByRoster(instructors)
	return instructors, nil
}

func (r *InstructorsRepositoryImpl) IDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM instructors WHERE name = $1`, name)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("instructor %q not in roster", name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CustomersOf lists the distinct customers who have at least one entry
// attributed to the instructor.
func (r *InstructorsRepositoryImpl) CustomersOf(ctx context.Context, instructorID int64) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.db.SelectContext(ctx, &customers, `
		SELECT DISTINCT c.id, c.full_name, c.created_at
		  FROM customers c
		  JOIN entries e ON e.customer_id = c.id
		 WHERE e.fahrlehrer_id = $1
		 ORDER BY c.full_name ASC
	`, instructorID)
	if err != nil {
		return nil, err
	}
	return customers, nil
}
