package services

import (
	"regexp"
	"strings"

	"sqlrunner/pkg/models"
)

// unknownTable is the placeholder used when table-name extraction fails.
const unknownTable = "unknown"

// prefixRule maps a statement prefix to its category. Rules are evaluated in
// order; the first match wins.
type prefixRule struct {
	prefix   string
	category models.Category
}

// statementClassifier classifies SQL text by case-insensitive prefix match.
// This is a deliberate approximation: no grammar parsing is performed, so a
// string that merely starts with a matching keyword (e.g. inside a comment)
// will be misclassified. Swapping in a parser-based classifier only requires
// reimplementing the Classifier interface.
type statementClassifier struct {
	rules         []prefixRule
	createTableRe *regexp.Regexp
	dropTableRe   *regexp.Regexp
}

// NewStatementClassifier creates the prefix-based statement classifier.
func NewStatementClassifier() Classifier {
	return &statementClassifier{
		rules: []prefixRule{
			{"SELECT", models.CategorySelect},
			{"CREATE TABLE", models.CategoryCreateTable},
			{"CREATE INDEX", models.CategoryCreateIndex},
			{"CREATE UNIQUE INDEX", models.CategoryCreateIndex},
			{"DROP TABLE", models.CategoryDropTable},
			{"ALTER TABLE", models.CategoryAlterTable},
			{"INSERT", models.CategoryInsert},
			{"UPDATE", models.CategoryUpdate},
			{"DELETE", models.CategoryDelete},
		},
		createTableRe: regexp.MustCompile(`(?i)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["'` + "`" + `\[]?(\w+)`),
		dropTableRe:   regexp.MustCompile(`(?i)^DROP\s+TABLE\s+(?:IF\s+EXISTS\s+)?["'` + "`" + `\[]?(\w+)`),
	}
}

// Classify normalizes the text and assigns a category. Normalization trims
// surrounding whitespace and strips exactly one trailing semicolon.
func (c *statementClassifier) Classify(text string) models.Statement {
	normalized := normalizeStatement(text)
	upper := strings.ToUpper(normalized)

	stmt := models.Statement{
		Text:     normalized,
		Category: models.CategoryOther,
	}

	for _, rule := range c.rules {
		if strings.HasPrefix(upper, rule.prefix) {
			stmt.Category = rule.category
			break
		}
	}

	switch stmt.Category {
	case models.CategoryCreateTable:
		stmt.Table = c.extractTable(c.createTableRe, normalized)
	case models.CategoryDropTable:
		stmt.Table = c.extractTable(c.dropTableRe, normalized)
	}

	return stmt
}

// extractTable runs a bounded keyword-pattern scan for the table name.
// Extraction failure never fails classification.
func (c *statementClassifier) extractTable(re *regexp.Regexp, text string) string {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 || match[1] == "" {
		return unknownTable
	}
	return match[1]
}

// normalizeStatement trims surrounding whitespace and at most one trailing
// statement terminator.
func normalizeStatement(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}
