// Package sqlite provides SQLite-specific repository implementations.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"sqlrunner/pkg/repositories"
)

// queryRepository implements repositories.QueryRepository for SQLite.
//
// Per call the lifecycle is: acquire connection, execute, commit or roll
// back, release. The connection is released on every path, including early
// failures, so a non-committed transaction is always discarded.
type queryRepository struct {
	db      *sql.DB
	maxRows int
	logger  zerolog.Logger
}

// NewQueryRepository creates a new SQLite query repository. maxRows bounds
// the number of rows materialized per read query; zero means unlimited.
func NewQueryRepository(db *sql.DB, maxRows int, logger zerolog.Logger) repositories.QueryRepository {
	return &queryRepository{
		db:      db,
		maxRows: maxRows,
		logger:  logger,
	}
}

// ExecuteQuery runs a read query and fetches all rows.
func (r *queryRepository) ExecuteQuery(ctx context.Context, query string) ([]string, []map[string]interface{}, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		if r.maxRows > 0 && len(results) >= r.maxRows {
			r.logger.Warn().
				Int("max_rows", r.maxRows).
				Msg("Result set truncated at configured row limit")
			break
		}

		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return columns, results, nil
}

// ExecuteStatement runs a write or DDL statement inside a transaction.
func (r *queryRepository) ExecuteStatement(ctx context.Context, statement string) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, statement)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn().Err(rbErr).Msg("Rollback after failed statement")
		}
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn().Err(rbErr).Msg("Rollback after failed row count")
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return affected, nil
}

// normalizeValue converts driver-level byte slices to strings so results
// serialize as text rather than base64.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
