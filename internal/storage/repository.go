package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cobranca/internal/core"
	applog "cobranca/internal/log"

	_ "modernc.org/sqlite"
)

// createdAtLayout is fixed-width so lexicographic ordering on the TEXT
// column matches chronological ordering.
const createdAtLayout = "2006-01-02 15:04:05.000000000"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListCustomers implements customers.Lister: every row, newest first.
func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone, email, total_debt_centavos, created_at
		   FROM customers
		  ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []core.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetCustomer(ctx context.Context, id string) (core.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, total_debt_centavos, created_at
		   FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Customer{}, fmt.Errorf("customer %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Customer{}, err
	}
	return c, nil
}

// CreateCustomer implements customers.Creator. The id is client-generated;
// the store is the sole authority for uniqueness and assigns created_at.
func (r *SQLiteRepository) CreateCustomer(ctx context.Context, c core.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, phone, email, total_debt_centavos, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, c.Email, c.TotalDebt.Centavos, createdAt.Format(createdAtLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %s: %w", c.ID, core.ErrConflict)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	slog.InfoContext(ctx, "Customer saved",
		applog.FieldCustomerID, c.ID,
		"name", c.Name,
		applog.FieldDebtCents, c.TotalDebt.Centavos)
	return nil
}

// UpdateCustomer implements customers.Updater: a full replace of the four
// mutable columns. id and created_at are never touched.
func (r *SQLiteRepository) UpdateCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE customers
		    SET name = ?, phone = ?, email = ?, total_debt_centavos = ?
		  WHERE id = ?`,
		upd.Name, upd.Phone, upd.Email, upd.TotalDebt.Centavos, id)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("customer %s: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Customer updated",
		applog.FieldCustomerID, id,
		applog.FieldDebtCents, upd.TotalDebt.Centavos)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (core.Customer, error) {
	var (
		c         core.Customer
		centavos  int64
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &centavos, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Customer{}, err
		}
		return core.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	c.TotalDebt = core.Money{Centavos: centavos}
	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return core.Customer{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = ts
	return c, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
