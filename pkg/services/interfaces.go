// Package services contains business logic implementations.
package services

import (
	"context"

	"sqlrunner/pkg/models"
)

// Classifier assigns a category to raw SQL text. Implementations are pure:
// classifying the same text twice yields the same statement.
type Classifier interface {
	Classify(text string) models.Statement
}

// QueryService drives the classifier, execution engine, and result formatter
// for one statement, recording every attempt in the caller's history.
type QueryService interface {
	// ExecuteStatement runs a raw SQL string on behalf of a user and returns
	// a uniform response body. It never returns an error: every failure is
	// folded into the response with success=false.
	ExecuteStatement(ctx context.Context, user string, query string) *models.QueryResponse
}

// HistoryService is the per-user bounded execution ledger, newest first.
type HistoryService interface {
	Record(user string, stmt models.Statement, outcome models.Outcome)
	List(user string) []models.HistoryRecord
	Clear(user string)
}

// MetadataService exposes store introspection.
type MetadataService interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, name string) (*models.TableSchema, error)
}

// AuthService manages accounts and bearer tokens.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}
