package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sqlrunner/pkg/models"
)

// historyService is the in-memory per-user execution ledger. Mutation for a
// user's list is serialized behind one lock guarding the ledger map; reads
// hold the lock only for the snapshot copy. The ledger never calls back into
// the execution path.
type historyService struct {
	mu sync.Mutex
	// records holds each user's history in insertion order, oldest first.
	// List reverses on read so callers see newest first.
	records map[string][]models.HistoryRecord
	cap     int
	logger  zerolog.Logger
}

// DefaultHistoryCap bounds a user's ledger when no cap is configured.
const DefaultHistoryCap = 50

// NewHistoryService creates a bounded per-user history ledger. The service
// is constructed once at process start and passed by handle; there is no
// ambient global ledger.
func NewHistoryService(cap int, logger zerolog.Logger) HistoryService {
	if cap <= 0 {
		cap = DefaultHistoryCap
	}
	return &historyService{
		records: make(map[string][]models.HistoryRecord),
		cap:     cap,
		logger:  logger,
	}
}

// Record appends one entry to the user's ledger, evicting the oldest entries
// once the cap is exceeded. Called exactly once per execution attempt,
// regardless of outcome.
func (s *historyService) Record(user string, stmt models.Statement, outcome models.Outcome) {
	record := models.HistoryRecord{
		Query:      stmt.Text,
		Category:   stmt.Category.String(),
		Success:    outcome.Succeeded(),
		ExecutedAt: time.Now().UTC(),
	}
	switch {
	case outcome.Failure != nil:
		record.Error = outcome.Failure.Message
	case outcome.Status != nil:
		affected := outcome.Status.AffectedRows
		record.AffectedRows = &affected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.records[user], record)
	if len(entries) > s.cap {
		entries = entries[len(entries)-s.cap:]
	}
	s.records[user] = entries

	s.logger.Debug().
		Str("user", user).
		Bool("success", record.Success).
		Int("entries", len(entries)).
		Msg("History entry recorded")
}

// List returns a newest-first snapshot of the user's ledger.
func (s *historyService) List(user string) []models.HistoryRecord {
	s.mu.Lock()
	entries := s.records[user]
	snapshot := make([]models.HistoryRecord, len(entries))
	for i, record := range entries {
		snapshot[len(entries)-1-i] = record
	}
	s.mu.Unlock()

	return snapshot
}

// Clear removes all records for the user atomically.
func (s *historyService) Clear(user string) {
	s.mu.Lock()
	delete(s.records, user)
	s.mu.Unlock()

	s.logger.Debug().Str("user", user).Msg("History cleared")
}
