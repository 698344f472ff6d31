package services

import (
	"testing"

	"sqlrunner/pkg/models"
)

func TestStatementClassifier_Classify(t *testing.T) {
	classifier := NewStatementClassifier()

	tests := []struct {
		name     string
		sql      string
		expected models.Category
	}{
		// Reads
		{"SELECT", "SELECT * FROM Customers", models.CategorySelect},
		{"SELECT with JOIN", "SELECT c.*, o.item FROM Customers c JOIN Orders o ON c.customer_id = o.customer_id", models.CategorySelect},
		{"SELECT lowercase", "select * from Customers", models.CategorySelect},
		{"SELECT with whitespace", "   SELECT 1   ", models.CategorySelect},
		{"SELECT trailing semicolon", "SELECT 1;", models.CategorySelect},

		// DDL
		{"CREATE TABLE", "CREATE TABLE test (id INT)", models.CategoryCreateTable},
		{"CREATE TABLE lowercase", "create table test (id int)", models.CategoryCreateTable},
		{"CREATE TABLE IF NOT EXISTS", "CREATE TABLE IF NOT EXISTS test (id INT)", models.CategoryCreateTable},
		{"CREATE INDEX", "CREATE INDEX idx_test ON test(id)", models.CategoryCreateIndex},
		{"CREATE UNIQUE INDEX", "CREATE UNIQUE INDEX idx_test ON test(id)", models.CategoryCreateIndex},
		{"DROP TABLE", "DROP TABLE test", models.CategoryDropTable},
		{"ALTER TABLE", "ALTER TABLE test ADD COLUMN name TEXT", models.CategoryAlterTable},

		// DML
		{"INSERT", "INSERT INTO test VALUES (1)", models.CategoryInsert},
		{"UPDATE", "UPDATE test SET id = 2", models.CategoryUpdate},
		{"DELETE", "DELETE FROM test WHERE id = 1", models.CategoryDelete},

		// Everything else
		{"Empty string", "", models.CategoryOther},
		{"Whitespace only", "   ", models.CategoryOther},
		{"PRAGMA", "PRAGMA table_info(test)", models.CategoryOther},
		{"EXPLAIN", "EXPLAIN SELECT * FROM test", models.CategoryOther},
		{"Misspelled keyword", "SELEKT * FROM test", models.CategoryOther},
		{"CREATE VIEW", "CREATE VIEW v AS SELECT 1", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := classifier.Classify(tt.sql)
			if stmt.Category != tt.expected {
				t.Errorf("Classify(%q).Category = %v, want %v", tt.sql, stmt.Category, tt.expected)
			}
		})
	}
}

func TestStatementClassifier_Normalization(t *testing.T) {
	classifier := NewStatementClassifier()

	tests := []struct {
		name string
		sql  string
		text string
	}{
		{"trims whitespace", "  SELECT 1  ", "SELECT 1"},
		{"strips one trailing semicolon", "SELECT 1;", "SELECT 1"},
		{"strips semicolon then whitespace", "SELECT 1 ; ", "SELECT 1"},
		{"keeps inner semicolons", "SELECT 1; SELECT 2;", "SELECT 1; SELECT 2"},
		{"already normalized", "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := classifier.Classify(tt.sql)
			if stmt.Text != tt.text {
				t.Errorf("Classify(%q).Text = %q, want %q", tt.sql, stmt.Text, tt.text)
			}

			// Classifying normalized text again must not change anything.
			again := classifier.Classify(stmt.Text)
			if again.Text != stmt.Text || again.Category != stmt.Category {
				t.Errorf("Classify is not idempotent for %q", tt.sql)
			}
		})
	}
}

func TestStatementClassifier_TableExtraction(t *testing.T) {
	classifier := NewStatementClassifier()

	tests := []struct {
		name  string
		sql   string
		table string
	}{
		{"plain create", "CREATE TABLE books (id INT)", "books"},
		{"create if not exists", "CREATE TABLE IF NOT EXISTS books (id INT)", "books"},
		{"quoted create", `CREATE TABLE "books" (id INT)`, "books"},
		{"bracket quoted create", "CREATE TABLE [books] (id INT)", "books"},
		{"plain drop", "DROP TABLE books", "books"},
		{"drop if exists", "DROP TABLE IF EXISTS books", "books"},
		{"unextractable name", "CREATE TABLE ", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := classifier.Classify(tt.sql)
			if stmt.Table != tt.table {
				t.Errorf("Classify(%q).Table = %q, want %q", tt.sql, stmt.Table, tt.table)
			}
		})
	}
}
