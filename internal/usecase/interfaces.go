package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetActiveByName(ctx context.Context, name string) (*domain.Account, error)
	GetByNumbersForUpdate(ctx context.Context, tx Transaction, numbers []string) ([]*domain.Account, error)
	ActiveNumberExists(ctx context.Context, number string) (bool, error)
	Update(ctx context.Context, account *domain.Account) error
	// ApplyBalanceDelta atomically adds delta to the stored balance,
	// never overwriting a previously read value.
	ApplyBalanceDelta(ctx context.Context, tx Transaction, number string, delta decimal.Decimal, modifiedBy, approvedBy string, updatedAt time.Time) error
	SetArchived(ctx context.Context, number string, archived bool, modifiedBy string, updatedAt time.Time) error
	ListActive(ctx context.Context) ([]*domain.Account, error)
	ListByCategories(ctx context.Context, categories []domain.AccountCategory) ([]*domain.Account, error)
	ListAll(ctx context.Context) ([]*domain.Account, error)
}

// JournalRepository defines data access for journal entries and their
// line items.
type JournalRepository interface {
	CreateEntry(ctx context.Context, entry *domain.JournalEntry) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetEntryForUpdate(ctx context.Context, tx Transaction, id string) (*domain.JournalEntry, error)
	MarkApproved(ctx context.Context, tx Transaction, id, approvedBy string, updatedAt time.Time) error
	MarkRejected(ctx context.Context, id, reason string, updatedAt time.Time) error
	ListByStatus(ctx context.Context, status domain.EntryStatus, limit, offset int) ([]*domain.JournalEntry, error)
	// FindApprovedLineItemsInRange returns approved line items dated
	// within [start, end]. An empty accountNumbers slice means all
	// accounts.
	FindApprovedLineItemsInRange(ctx context.Context, start, end time.Time, accountNumbers []string) ([]domain.LineItem, error)
	FindApprovedLineItemsByAccount(ctx context.Context, accountNumber string) ([]domain.LineItem, error)
}

// UserRepository defines read access to the identity directory.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	EmailsByRole(ctx context.Context, role domain.Role) ([]string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Notifier sends outbound notifications. Delivery is fire-and-forget:
// callers log failures and never propagate them.
type Notifier interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// DocumentStore persists rendered report artifacts and returns a
// retrieval URL.
type DocumentStore interface {
	Store(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
