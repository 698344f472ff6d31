// Package repositories defines interfaces for data access operations.
package repositories

import (
	"context"

	"sqlrunner/pkg/models"
)

// QueryRepository executes raw SQL against the store. Each call acquires a
// dedicated connection and releases it on every exit path.
type QueryRepository interface {
	// ExecuteQuery runs a read query and materializes all resulting rows.
	// Columns preserves the result-set column order.
	ExecuteQuery(ctx context.Context, query string) (columns []string, rows []map[string]interface{}, err error)
	// ExecuteStatement runs a write or DDL statement inside a transaction
	// that is committed on success and rolled back on error, returning the
	// engine-reported affected-row count.
	ExecuteStatement(ctx context.Context, statement string) (int64, error)
}

// MetadataRepository reads table metadata from the store.
type MetadataRepository interface {
	// ListTables returns user table names in alphabetical order, excluding
	// internal and account-management tables.
	ListTables(ctx context.Context) ([]string, error)
	// TableExists reports whether the named table exists.
	TableExists(ctx context.Context, name string) (bool, error)
	// DescribeColumns returns ordered column metadata for a table.
	DescribeColumns(ctx context.Context, name string) ([]models.ColumnInfo, error)
	// SampleRows returns up to limit rows from a table in natural order.
	SampleRows(ctx context.Context, name string, limit int) ([]map[string]interface{}, error)
}

// UserRepository stores account credentials.
type UserRepository interface {
	Create(ctx context.Context, record *models.UserRecord) error
	GetByUsername(ctx context.Context, username string) (*models.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)
}
