package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlrunner/pkg/models"
)

func successOutcome(affected int64) models.Outcome {
	return models.Outcome{Status: &models.StatusResult{
		Category:     models.CategoryInsert,
		Message:      "ok",
		AffectedRows: affected,
	}}
}

func failureOutcome(msg string) models.Outcome {
	return models.Outcome{Failure: &models.Failure{Message: msg}}
}

func TestHistoryService_RecordAndList(t *testing.T) {
	svc := NewHistoryService(10, zerolog.Nop())

	svc.Record("alice", models.Statement{Text: "INSERT INTO t VALUES (1)", Category: models.CategoryInsert}, successOutcome(1))
	svc.Record("alice", models.Statement{Text: "SELEKT 1", Category: models.CategoryOther}, failureOutcome("syntax error"))

	records := svc.List("alice")
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "SELEKT 1", records[0].Query)
	assert.False(t, records[0].Success)
	assert.Equal(t, "syntax error", records[0].Error)
	assert.Nil(t, records[0].AffectedRows)

	assert.Equal(t, "INSERT INTO t VALUES (1)", records[1].Query)
	assert.True(t, records[1].Success)
	assert.Empty(t, records[1].Error)
	require.NotNil(t, records[1].AffectedRows)
	assert.Equal(t, int64(1), *records[1].AffectedRows)
}

func TestHistoryService_CapEviction(t *testing.T) {
	svc := NewHistoryService(3, zerolog.Nop())

	for i := 0; i < 5; i++ {
		stmt := models.Statement{Text: fmt.Sprintf("SELECT %d", i), Category: models.CategorySelect}
		svc.Record("alice", stmt, models.Outcome{RowSet: &models.RowSet{Columns: []string{}, Rows: nil}})
	}

	records := svc.List("alice")
	require.Len(t, records, 3)
	assert.Equal(t, "SELECT 4", records[0].Query)
	assert.Equal(t, "SELECT 3", records[1].Query)
	assert.Equal(t, "SELECT 2", records[2].Query)
}

func TestHistoryService_UserIsolation(t *testing.T) {
	svc := NewHistoryService(10, zerolog.Nop())

	svc.Record("alice", models.Statement{Text: "SELECT 1", Category: models.CategorySelect}, failureOutcome("boom"))
	svc.Record("bob", models.Statement{Text: "SELECT 2", Category: models.CategorySelect}, failureOutcome("boom"))

	assert.Len(t, svc.List("alice"), 1)
	assert.Len(t, svc.List("bob"), 1)
	assert.Equal(t, "SELECT 1", svc.List("alice")[0].Query)
	assert.Empty(t, svc.List("carol"))
}

func TestHistoryService_Clear(t *testing.T) {
	svc := NewHistoryService(10, zerolog.Nop())

	svc.Record("alice", models.Statement{Text: "SELECT 1", Category: models.CategorySelect}, failureOutcome("boom"))
	svc.Record("bob", models.Statement{Text: "SELECT 2", Category: models.CategorySelect}, failureOutcome("boom"))

	svc.Clear("alice")

	assert.Empty(t, svc.List("alice"))
	assert.Len(t, svc.List("bob"), 1)

	// Clearing an unknown user is a no-op.
	svc.Clear("carol")
}

func TestHistoryService_ConcurrentAccess(t *testing.T) {
	svc := NewHistoryService(20, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n%2)
			for j := 0; j < 50; j++ {
				svc.Record(user, models.Statement{Text: "SELECT 1", Category: models.CategorySelect}, failureOutcome("x"))
				svc.List(user)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, svc.List("user-0"), 20)
	assert.Len(t, svc.List("user-1"), 20)
}
