// internal/intent/audit/audit.go
package audit

import (
	"context"
	"database/sql"
	"time"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/intent"
)

const insertEntry = `INSERT INTO intent_audit
	(request_id, input, intent, detection_method, confidence, action, status, error_type, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Entry is one row of intent_audit.
type Entry struct {
	RequestID       string
	Input           string
	Intent          string
	DetectionMethod string
	Confidence      float64
	Action          string
	Status          string
	ErrorType       string
	CreatedAt       time.Time
}

// EntryFromResult flattens a pipeline result. Input is the normalized
// utterance the classifier saw.
func EntryFromResult(requestID string, result intent.Result) Entry {
	return Entry{
		RequestID:       requestID,
		Input:           result.IntentAnalysis.RawInput,
		Intent:          result.IntentAnalysis.Intent,
		DetectionMethod: string(result.IntentAnalysis.DetectionMethod),
		Confidence:      result.IntentAnalysis.Confidence,
		Action:          string(result.ActionTaken),
		Status:          result.Result.Status,
		ErrorType:       result.Result.ErrorType,
	}
}

// Store appends audit rows. It never reads them back. A nil *Store is a
// valid, disabled store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Record inserts one entry, stamping CreatedAt when unset.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if s == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, insertEntry,
		entry.RequestID,
		entry.Input,
		entry.Intent,
		entry.DetectionMethod,
		entry.Confidence,
		entry.Action,
		entry.Status,
		entry.ErrorType,
		entry.CreatedAt,
	)
	if err != nil {
		return errors.NewAuditWriteFailedError(err).WithMetadata("requestId", entry.RequestID)
	}
	return nil
}
