package audit

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/intent"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var insertPattern = regexp.QuoteMeta("INSERT INTO intent_audit")

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewStore(db)
	store.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return store, mock
}

func TestEntryFromResult(t *testing.T) {
	result := intent.NewController().ProcessInput("What is 10 divided by 0")
	entry := EntryFromResult("req-1", result)

	assert.Equal(t, Entry{
		RequestID:       "req-1",
		Input:           "what is 10 divided by 0",
		Intent:          "calculate",
		DetectionMethod: "pattern",
		Confidence:      0.9,
		Action:          "call_api",
		Status:          "error",
		ErrorType:       "calculation_error",
	}, entry)
}

func TestRecord_Inserts(t *testing.T) {
	store, mock := newMockStore(t)
	entry := EntryFromResult("req-2", intent.NewController().ProcessInput("weather in paris"))

	mock.ExpectExec(insertPattern).
		WithArgs("req-2", "weather in paris", "weather", "pattern", 0.9, "call_api", "success", "",
			time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Record(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_KeepsExplicitTimestamp(t *testing.T) {
	store, mock := newMockStore(t)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(insertPattern).
		WithArgs("req-3", "hi", "search", "default", 0.3, "call_api", "success", "", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Record(context.Background(), Entry{
		RequestID: "req-3", Input: "hi", Intent: "search", DetectionMethod: "default",
		Confidence: 0.3, Action: "call_api", Status: "success", CreatedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_FailureIsTyped(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(insertPattern).WillReturnError(stderrors.New("relation does not exist"))

	err := store.Record(context.Background(), Entry{RequestID: "req-4"})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeAuditWriteFailed, stdErr.Code)
	assert.Equal(t, "req-4", stdErr.Metadata["requestId"])
	assert.True(t, stdErr.Retryable)
}

func TestNilStore_IsDisabled(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Record(context.Background(), Entry{}))
}
