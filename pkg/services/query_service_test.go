package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"

	"sqlrunner/pkg/infrastructure/metrics"
	"sqlrunner/pkg/repositories/sqlite"
)

// openTestDB opens a file-backed SQLite database. A file path matters here:
// the repositories check out a fresh pool connection per call, and separate
// connections to ":memory:" each see their own empty database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func setupQueryService(t *testing.T) (QueryService, HistoryService) {
	t.Helper()

	db := openTestDB(t)
	history := NewHistoryService(10, zerolog.Nop())
	repo := sqlite.NewQueryRepository(db, 0, zerolog.Nop())
	svc := NewQueryService(repo, history, zerolog.Nop(), metrics.NewNoOpCollector())

	return svc, history
}

func TestQueryService_WriteReadRoundTrip(t *testing.T) {
	svc, _ := setupQueryService(t)
	ctx := context.Background()

	resp := svc.ExecuteStatement(ctx, "alice", "CREATE TABLE nums (x INTEGER)")
	require.True(t, resp.Success)
	assert.Equal(t, "Table 'nums' created successfully!", resp.Message)
	assert.Equal(t, "CREATE_TABLE", resp.Category)
	assert.GreaterOrEqual(t, resp.ExecutionTime, 0.0)

	resp = svc.ExecuteStatement(ctx, "alice", "INSERT INTO nums VALUES (1), (2)")
	require.True(t, resp.Success)
	assert.Equal(t, "Successfully inserted 2 row(s)!", resp.Message)
	require.NotNil(t, resp.AffectedRows)
	assert.Equal(t, int64(2), *resp.AffectedRows)

	resp = svc.ExecuteStatement(ctx, "alice", "SELECT x FROM nums ORDER BY x")
	require.True(t, resp.Success)
	assert.Equal(t, []string{"x"}, resp.Columns)
	require.Len(t, resp.Data, 2)
	assert.EqualValues(t, 1, resp.Data[0]["x"])
	assert.EqualValues(t, 2, resp.Data[1]["x"])
	assert.Empty(t, resp.Message)
}

func TestQueryService_EmptyResultSet(t *testing.T) {
	svc, _ := setupQueryService(t)
	ctx := context.Background()

	svc.ExecuteStatement(ctx, "alice", "CREATE TABLE nums (x INTEGER)")
	resp := svc.ExecuteStatement(ctx, "alice", "SELECT x FROM nums")

	require.True(t, resp.Success)
	assert.Equal(t, []string{}, resp.Columns)
	assert.Empty(t, resp.Data)
}

func TestQueryService_UpdateAndDeleteMessages(t *testing.T) {
	svc, _ := setupQueryService(t)
	ctx := context.Background()

	svc.ExecuteStatement(ctx, "alice", "CREATE TABLE nums (x INTEGER)")
	svc.ExecuteStatement(ctx, "alice", "INSERT INTO nums VALUES (1), (2), (3)")

	resp := svc.ExecuteStatement(ctx, "alice", "UPDATE nums SET x = x + 10 WHERE x > 1")
	require.True(t, resp.Success)
	assert.Equal(t, "Successfully updated 2 row(s)!", resp.Message)

	resp = svc.ExecuteStatement(ctx, "alice", "DELETE FROM nums WHERE x = 1")
	require.True(t, resp.Success)
	assert.Equal(t, "Successfully deleted 1 row(s)!", resp.Message)

	resp = svc.ExecuteStatement(ctx, "alice", "DROP TABLE nums")
	require.True(t, resp.Success)
	assert.Equal(t, "Table 'nums' dropped successfully!", resp.Message)
}

func TestQueryService_FailureFunnel(t *testing.T) {
	svc, history := setupQueryService(t)
	ctx := context.Background()

	resp := svc.ExecuteStatement(ctx, "alice", "SELEKT * FROM nowhere")
	require.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.Message)
	assert.Nil(t, resp.AffectedRows)

	// The attempt is still recorded.
	records := history.List("alice")
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Equal(t, resp.Error, records[0].Error)
	assert.Equal(t, "OTHER", records[0].Category)
}

func TestQueryService_EmptyQuery(t *testing.T) {
	svc, history := setupQueryService(t)

	resp := svc.ExecuteStatement(context.Background(), "alice", "   ")
	require.False(t, resp.Success)
	assert.Equal(t, "query cannot be empty", resp.Error)

	require.Len(t, history.List("alice"), 1)
}

func TestQueryService_HistoryOrder(t *testing.T) {
	svc, history := setupQueryService(t)
	ctx := context.Background()

	svc.ExecuteStatement(ctx, "alice", "CREATE TABLE nums (x INTEGER)")
	svc.ExecuteStatement(ctx, "alice", "INSERT INTO nums VALUES (1)")
	svc.ExecuteStatement(ctx, "alice", "SELECT * FROM nums")

	records := history.List("alice")
	require.Len(t, records, 3)
	assert.Equal(t, "SELECT * FROM nums", records[0].Query)
	assert.Equal(t, "INSERT INTO nums VALUES (1)", records[1].Query)
	assert.Equal(t, "CREATE TABLE nums (x INTEGER)", records[2].Query)
}
