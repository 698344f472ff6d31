// Package models provides data structures used throughout the SQL runner service.
package models

import (
	"time"
)

// Category describes the intent of a SQL statement as derived by the
// prefix-based classifier.
type Category int

const (
	CategorySelect Category = iota
	CategoryCreateTable
	CategoryCreateIndex
	CategoryDropTable
	CategoryAlterTable
	CategoryInsert
	CategoryUpdate
	CategoryDelete
	CategoryOther
)

// String returns the wire representation of the category.
func (c Category) String() string {
	switch c {
	case CategorySelect:
		return "SELECT"
	case CategoryCreateTable:
		return "CREATE_TABLE"
	case CategoryCreateIndex:
		return "CREATE_INDEX"
	case CategoryDropTable:
		return "DROP_TABLE"
	case CategoryAlterTable:
		return "ALTER_TABLE"
	case CategoryInsert:
		return "INSERT"
	case CategoryUpdate:
		return "UPDATE"
	case CategoryDelete:
		return "DELETE"
	case CategoryOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// IsRead reports whether statements of this category produce a row set
// rather than an affected-row count.
func (c Category) IsRead() bool {
	return c == CategorySelect
}

// Statement is a normalized SQL statement together with its derived
// classification. It is immutable once produced by the classifier.
type Statement struct {
	// Text is the raw statement, trimmed of surrounding whitespace with a
	// single trailing semicolon stripped.
	Text     string
	Category Category
	// Table is a best-effort table name extracted for CREATE TABLE and
	// DROP TABLE statements. Falls back to "unknown" when extraction fails.
	Table string
}

// RowSet holds the materialized result of a read query. Columns preserves
// the result-set column order; each row maps column name to value.
type RowSet struct {
	Columns []string
	Rows    []map[string]interface{}
}

// StatusResult describes the outcome of a successful write or DDL statement.
type StatusResult struct {
	Category     Category
	Message      string
	AffectedRows int64
}

// Failure carries the underlying error text of a failed execution attempt.
type Failure struct {
	Message string
}

// Outcome is the tagged result of one execution attempt. Exactly one of
// RowSet, Status, or Failure is non-nil.
type Outcome struct {
	RowSet  *RowSet
	Status  *StatusResult
	Failure *Failure
}

// Succeeded reports whether the outcome is a success variant.
func (o Outcome) Succeeded() bool {
	return o.Failure == nil
}

// QueryRequest represents a statement execution request.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the uniform response body for a statement execution.
// Exactly one of the result shapes is populated: Data/Columns for row sets,
// Message/Category/AffectedRows for status results, Error for failures.
type QueryResponse struct {
	Success       bool                     `json:"success"`
	Data          []map[string]interface{} `json:"data,omitempty"`
	Columns       []string                 `json:"columns,omitempty"`
	Message       string                   `json:"message,omitempty"`
	Category      string                   `json:"category,omitempty"`
	AffectedRows  *int64                   `json:"affected_rows,omitempty"`
	Error         string                   `json:"error,omitempty"`
	ExecutionTime float64                  `json:"execution_time"`
}

// HistoryRecord is one entry in a user's execution history. Immutable once
// created.
type HistoryRecord struct {
	Query        string    `json:"query"`
	Category     string    `json:"category"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
	AffectedRows *int64    `json:"affected_rows,omitempty"`
	ExecutedAt   time.Time `json:"executed_at"`
}
