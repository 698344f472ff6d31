package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/models"
	"sqlrunner/pkg/repositories"
)

// reservedTables are excluded from listings: account management lives in the
// same store as user data.
var reservedTables = map[string]bool{
	"users": true,
}

// metadataRepository implements repositories.MetadataRepository for SQLite.
type metadataRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewMetadataRepository creates a new SQLite metadata repository.
func NewMetadataRepository(db *sql.DB, logger zerolog.Logger) repositories.MetadataRepository {
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

// ListTables returns user table names in alphabetical order.
func (r *metadataRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, srvErrors.Wrap(err, srvErrors.CodeMetadataFailed, "failed to list tables")
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, srvErrors.Wrap(err, srvErrors.CodeMetadataFailed, "failed to scan table name")
		}
		if reservedTables[name] {
			continue
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, srvErrors.Wrap(err, srvErrors.CodeMetadataFailed, "failed to read table names")
	}

	return tables, nil
}

// TableExists reports whether the named table exists.
func (r *metadataRepository) TableExists(ctx context.Context, name string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, srvErrors.Wrap(err, srvErrors.CodeMetadataFailed, "failed to check table existence")
	}
	return true, nil
}

// DescribeColumns returns ordered column metadata via PRAGMA table_info.
func (r *metadataRepository) DescribeColumns(ctx context.Context, name string) ([]models.ColumnInfo, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to describe table %s", name)
	}
	defer rows.Close()

	columns := make([]models.ColumnInfo, 0)
	for rows.Next() {
		var (
			cid          int
			colName      string
			colType      string
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultValue, &primaryKey); err != nil {
			return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to scan column of %s", name)
		}

		col := models.ColumnInfo{
			Name:       colName,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: primaryKey != 0,
		}
		if defaultValue.Valid {
			v := defaultValue.String
			col.DefaultValue = &v
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to read columns of %s", name)
	}

	return columns, nil
}

// SampleRows returns up to limit rows in the engine's natural order.
func (r *metadataRepository) SampleRows(ctx context.Context, name string, limit int) ([]map[string]interface{}, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT %d", name, limit))
	if err != nil {
		return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to sample rows of %s", name)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to read columns of %s", name)
	}

	sample := make([]map[string]interface{}, 0, limit)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to scan sample row of %s", name)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		sample = append(sample, row)
	}
	if err := rows.Err(); err != nil {
		return nil, srvErrors.Wrapf(err, srvErrors.CodeMetadataFailed, "failed to read sample rows of %s", name)
	}

	return sample, nil
}
