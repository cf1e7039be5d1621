package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestRecipientRepository_ListUnnotified(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	contentID := uuid.New()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "content_id", "member_id", "notified", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), contentID, uuid.New(), false, now, now).
		AddRow(uuid.New(), contentID, uuid.New(), false, now, now)

	mock.ExpectQuery("SELECT (.+) FROM content_recipient").
		WithArgs(contentID).
		WillReturnRows(rows)

	recipients, callErr := store.Recipients.ListUnnotified(ctx, contentID)
	if callErr != nil {
		t.Fatalf("ListUnnotified() error = %v", callErr)
	}
	if len(recipients) != 2 {
		t.Errorf("ListUnnotified() count = %d, want 2", len(recipients))
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestRecipientRepository_MarkNotified(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	recipientID := uuid.New()

	testCases := []struct {
		name      string
		setupMock func()
	}{
		{
			name: "flips the flag",
			setupMock: func() {
				mock.ExpectExec("UPDATE content_recipient").
					WithArgs(recipientID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already notified is a no-op",
			setupMock: func() {
				mock.ExpectExec("UPDATE content_recipient").
					WithArgs(recipientID).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			if callErr := store.Recipients.MarkNotified(ctx, recipientID); callErr != nil {
				t.Errorf("MarkNotified() error = %v", callErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}
