package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

func TestJournalRepositoryMarkRejected(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE journal_entries").
		WithArgs(anyArgs(5)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := &JournalRepository{pool: mockPool}
	err := repo.MarkRejected(context.Background(), "je-1", "missing receipt", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestJournalRepositoryMarkRejectedAlreadyFinalized(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE journal_entries").
		WithArgs(anyArgs(5)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectQuery("SELECT status FROM journal_entries").
		WithArgs("je-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("approved"))

	repo := &JournalRepository{pool: mockPool}
	err := repo.MarkRejected(context.Background(), "je-1", "missing receipt", time.Now())

	if !errors.Is(err, domain.ErrAlreadyFinalized) {
		t.Fatalf("expected already finalized for a lost race, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestJournalRepositoryMarkRejectedNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE journal_entries").
		WithArgs(anyArgs(5)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectQuery("SELECT status FROM journal_entries").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := &JournalRepository{pool: mockPool}
	err := repo.MarkRejected(context.Background(), "missing", "missing receipt", time.Now())

	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected entry not found, got %v", err)
	}

	assertExpectations(t, mockPool)
}
