package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sqlrunner/pkg/infrastructure/metrics"
	"sqlrunner/pkg/models"
	"sqlrunner/pkg/repositories"
)

// queryService implements QueryService. It drives classify → execute →
// format for one statement and records every attempt, success or failure,
// in the caller's history.
type queryService struct {
	repo       repositories.QueryRepository
	history    HistoryService
	classifier Classifier
	logger     zerolog.Logger
	metrics    metrics.Collector
}

// NewQueryService creates a new query service.
func NewQueryService(
	repo repositories.QueryRepository,
	history HistoryService,
	logger zerolog.Logger,
	collector metrics.Collector,
) QueryService {
	return &queryService{
		repo:       repo,
		history:    history,
		classifier: NewStatementClassifier(),
		logger:     logger,
		metrics:    collector,
	}
}

// ExecuteStatement classifies and executes one statement on behalf of a user.
// The measured execution time spans classification and execution, not
// response formatting.
func (s *queryService) ExecuteStatement(ctx context.Context, user string, query string) *models.QueryResponse {
	timer := s.metrics.StartTimer("query_execution")
	defer timer.Stop()

	start := time.Now()
	stmt := s.classifier.Classify(query)
	outcome := s.execute(ctx, stmt)
	elapsed := time.Since(start)

	s.history.Record(user, stmt, outcome)

	if outcome.Succeeded() {
		s.metrics.IncrementCounter("successful_queries", "category", stmt.Category.String())
		s.logger.Info().
			Str("user", user).
			Str("category", stmt.Category.String()).
			Dur("execution_time", elapsed).
			Msg("Statement executed")
	} else {
		s.metrics.IncrementCounter("failed_queries", "category", stmt.Category.String())
		s.logger.Warn().
			Str("user", user).
			Str("category", stmt.Category.String()).
			Str("error", outcome.Failure.Message).
			Msg("Statement failed")
	}
	s.metrics.RecordHistogram("query_execution_seconds", elapsed.Seconds())

	return formatOutcome(stmt, outcome, elapsed)
}

// execute runs the statement through the store and converts the result into
// an outcome. Every error path funnels into the Failure variant: nothing is
// propagated past this boundary.
func (s *queryService) execute(ctx context.Context, stmt models.Statement) models.Outcome {
	if stmt.Text == "" {
		return models.Outcome{Failure: &models.Failure{Message: "query cannot be empty"}}
	}

	if stmt.Category.IsRead() {
		columns, rows, err := s.repo.ExecuteQuery(ctx, stmt.Text)
		if err != nil {
			return models.Outcome{Failure: &models.Failure{Message: err.Error()}}
		}
		if len(rows) == 0 {
			columns = []string{}
		}
		return models.Outcome{RowSet: &models.RowSet{Columns: columns, Rows: rows}}
	}

	affected, err := s.repo.ExecuteStatement(ctx, stmt.Text)
	if err != nil {
		return models.Outcome{Failure: &models.Failure{Message: err.Error()}}
	}

	return models.Outcome{Status: &models.StatusResult{
		Category:     stmt.Category,
		Message:      statusMessage(stmt, affected),
		AffectedRows: affected,
	}}
}

// statusMessage produces the category-specific success message for a write
// or DDL statement.
func statusMessage(stmt models.Statement, affected int64) string {
	switch stmt.Category {
	case models.CategoryCreateTable:
		return fmt.Sprintf("Table '%s' created successfully!", stmt.Table)
	case models.CategoryDropTable:
		return fmt.Sprintf("Table '%s' dropped successfully!", stmt.Table)
	case models.CategoryCreateIndex:
		return "Index created successfully!"
	case models.CategoryAlterTable:
		return "Table altered successfully!"
	case models.CategoryInsert:
		return fmt.Sprintf("Successfully inserted %d row(s)!", affected)
	case models.CategoryUpdate:
		return fmt.Sprintf("Successfully updated %d row(s)!", affected)
	case models.CategoryDelete:
		return fmt.Sprintf("Successfully deleted %d row(s)!", affected)
	default:
		return fmt.Sprintf("Query executed successfully. %d row(s) affected.", affected)
	}
}

// formatOutcome is a pure, total mapping from outcome to response body.
func formatOutcome(stmt models.Statement, outcome models.Outcome, elapsed time.Duration) *models.QueryResponse {
	resp := &models.QueryResponse{
		ExecutionTime: elapsed.Seconds(),
	}

	switch {
	case outcome.RowSet != nil:
		resp.Success = true
		resp.Columns = outcome.RowSet.Columns
		resp.Data = outcome.RowSet.Rows
	case outcome.Status != nil:
		resp.Success = true
		resp.Message = outcome.Status.Message
		resp.Category = outcome.Status.Category.String()
		affected := outcome.Status.AffectedRows
		resp.AffectedRows = &affected
	default:
		resp.Success = false
		resp.Error = outcome.Failure.Message
	}

	return resp
}
