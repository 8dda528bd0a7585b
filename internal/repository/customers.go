package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
)

// CustomerFilter narrows the customer list by substring match on the full
// name. Query wins over First/Last when set.
type CustomerFilter struct {
	Query string
	First string
	Last  string
}

type CustomersRepository interface {
	List(ctx context.Context, f CustomerFilter) ([]model.Customer, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, fullName string) (*model.Customer, error)
	FindOrCreate(ctx context.Context, tx *sqlx.Tx, fullName string) (int64, bool, error)
	Rename(ctx context.Context, id int64, fullName string) error
	DeleteCascade(ctx context.Context, id int64) error
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

const customerListCap = 50

func (r *CustomersRepositoryImpl) List(ctx context.Context, f CustomerFilter) ([]model.Customer, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT id, full_name, created_at FROM customers WHERE 1=1`)
	add := func(pattern string) {
		params = append(params, "%"+pattern+"%")
		fmt.Fprintf(&sb, " AND full_name ILIKE $%d", len(params))
	}
	if f.Query != "" {
		add(f.Query)
	} else {
		if f.First != "" {
			add(f.First)
		}
		if f.Last != "" {
			add(f.Last)
		}
	}
	fmt.Fprintf(&sb, " ORDER BY full_name LIMIT %d", customerListCap)

	customers := []model.Customer{}
	if err := r.db.SelectContext(ctx, &customers, sb.String(), params...); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`)
	return count, err
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT id, full_name, created_at
		  FROM customers
		 WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomersRepositoryImpl) Create(ctx context.Context, fullName string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		INSERT INTO customers (full_name)
		VALUES ($1)
		RETURNING id, full_name, created_at
	`, strings.TrimSpace(fullName))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOrCreate resolves a customer id by case-insensitive name match,
// inserting a new row when no match exists. Lookup-then-insert is not
// protected by a unique constraint; concurrent calls with the same new name
// can race. Passing tx scopes both statements to that transaction.
func (r *CustomersRepositoryImpl) FindOrCreate(ctx context.Context, tx *sqlx.Tx, fullName string) (int64, bool, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return 0, false, fmt.Errorf("empty customer name")
	}

	var (
		id      int64
		created bool
	)
	err := r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &id, `
			SELECT id FROM customers WHERE LOWER(full_name) = LOWER($1)
		`, name)
		if err == nil {
			return nil
		}
		if err != sql.ErrNoRows {
			return err
		}
		created = true
		return tx.GetContext(ctx, &id, `
			INSERT INTO customers (full_name) VALUES ($1) RETURNING id
		`, name)
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

func (r *CustomersRepositoryImpl) Rename(ctx context.Context, id int64, fullName string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET full_name = $1 WHERE id = $2
	`, strings.TrimSpace(fullName), id)
	return err
}

// DeleteCascade removes the customer together with its entries and minutes
// in one transaction, so a failure cannot orphan ledger rows.
func (r *CustomersRepositoryImpl) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM minutes WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("delete minutes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	return tx.Commit()
}

func (r *CustomersRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
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
