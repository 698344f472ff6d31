package sqlite

import (
	"context"
	"database/sql"

	srvErrors "sqlrunner/pkg/errors"
)

// EnsureSchema creates the account table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			user_id         TEXT PRIMARY KEY,
			username        TEXT NOT NULL UNIQUE,
			email           TEXT,
			full_name       TEXT NOT NULL,
			hashed_password TEXT NOT NULL,
			is_active       INTEGER NOT NULL DEFAULT 1,
			created_at      TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to create users table")
	}
	return nil
}

// SeedSampleData populates the store with the demo dataset used by the query
// playground. Idempotent: skips seeding when the Customers table exists.
func SeedSampleData(ctx context.Context, db *sql.DB) error {
	var name string
	err := db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name='Customers'`).Scan(&name)
	if err == nil {
		return nil // already seeded
	}
	if err != sql.ErrNoRows {
		return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to check sample data")
	}

	statements := []string{
		`CREATE TABLE Customers (
			customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name  VARCHAR(100),
			last_name   VARCHAR(100),
			age         INTEGER,
			country     VARCHAR(100)
		)`,
		`INSERT INTO Customers (first_name, last_name, age, country) VALUES
			('John', 'Doe', 30, 'USA'),
			('Robert', 'Luna', 22, 'USA'),
			('David', 'Robinson', 25, 'UK'),
			('John', 'Reinhardt', 22, 'UK'),
			('Betty', 'Doe', 28, 'UAE')`,
		`CREATE TABLE Orders (
			order_id    INTEGER PRIMARY KEY AUTOINCREMENT,
			item        VARCHAR(100),
			amount      INTEGER,
			customer_id INTEGER,
			FOREIGN KEY (customer_id) REFERENCES Customers(customer_id)
		)`,
		`INSERT INTO Orders (item, amount, customer_id) VALUES
			('Keyboard', 400, 4),
			('Mouse', 300, 4),
			('Monitor', 12000, 3),
			('Keyboard', 400, 1),
			('Mousepad', 250, 2)`,
		`CREATE TABLE Shippings (
			shipping_id INTEGER PRIMARY KEY AUTOINCREMENT,
			status      VARCHAR(100),
			customer    INTEGER
		)`,
		`INSERT INTO Shippings (status, customer) VALUES
			('Pending', 2),
			('Pending', 4),
			('Delivered', 3),
			('Pending', 5),
			('Delivered', 1)`,
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to begin seed transaction")
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to seed sample data")
		}
	}
	if err := tx.Commit(); err != nil {
		return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to commit sample data")
	}

	return nil
}
