package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

const accountColumns = `number, name, description, category, subcategory, normal_side,
	initial_balance, balance, archived, display_order, statement,
	created_by, last_modified_by, last_approved_by, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account. Account numbers and names are unique
// across the whole chart, archived rows included; a constraint hit is
// reported as a duplicate, not a storage failure.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		account.Number,
		account.Name,
		account.Description,
		string(account.Category),
		account.Subcategory,
		string(account.NormalSide),
		decimalToNumeric(account.InitialBalance),
		decimalToNumeric(account.Balance),
		account.Archived,
		account.Order,
		account.Statement,
		account.CreatedBy,
		account.LastModifiedBy,
		account.LastApprovedBy,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, account.Number)
	}

	return err
}

// GetByNumber retrieves an account by its number, archived or not.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE number = $1`, number)

	return scanAccount(row)
}

// GetActiveByName retrieves a non-archived account by its display name.
func (r *AccountRepository) GetActiveByName(ctx context.Context, name string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE name = $1 AND NOT archived`, name)

	return scanAccount(row)
}

// GetByNumbersForUpdate retrieves accounts with FOR UPDATE locks.
// Callers pass numbers pre-sorted so concurrent approvals lock rows in
// the same order.
func (r *AccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE number = ANY($1)
		ORDER BY number
		FOR UPDATE`, numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ActiveNumberExists reports whether a non-archived account already
// uses the number.
func (r *AccountRepository) ActiveNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE number = $1 AND NOT archived)`, number).Scan(&exists)

	return exists, err
}

// Update updates an account's descriptive fields. Balances are only
// touched by ApplyBalanceDelta.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $2, description = $3, subcategory = $4, display_order = $5,
		    statement = $6, last_modified_by = $7, updated_at = $8
		WHERE number = $1`,
		account.Number,
		account.Name,
		account.Description,
		account.Subcategory,
		account.Order,
		account.Statement,
		account.LastModifiedBy,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// ApplyBalanceDelta adds delta to the stored balance as a relative
// update inside the caller's transaction.
func (r *AccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, number string, delta decimal.Decimal, modifiedBy, approvedBy string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $2, last_modified_by = $3, last_approved_by = $4, updated_at = $5
		WHERE number = $1`,
		number,
		decimalToNumeric(delta),
		modifiedBy,
		approvedBy,
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// SetArchived flips the archived flag.
func (r *AccountRepository) SetArchived(ctx context.Context, number string, archived bool, modifiedBy string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET archived = $2, last_modified_by = $3, updated_at = $4
		WHERE number = $1`,
		number, archived, modifiedBy, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// ListActive lists non-archived accounts in display order.
func (r *AccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE NOT archived
		ORDER BY display_order, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListByCategories lists non-archived accounts in the given categories.
func (r *AccountRepository) ListByCategories(ctx context.Context, categories []domain.AccountCategory) ([]*domain.Account, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE category = ANY($1) AND NOT archived
		ORDER BY number`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListAll lists every account, archived included.
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a                       domain.Account
		category, normalSide    string
		initialBalance, balance pgtype.Numeric
		createdAt, updatedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&a.Number, &a.Name, &a.Description, &category, &a.Subcategory, &normalSide,
		&initialBalance, &balance, &a.Archived, &a.Order, &a.Statement,
		&a.CreatedBy, &a.LastModifiedBy, &a.LastApprovedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	a.Category = domain.AccountCategory(category)
	a.NormalSide = domain.NormalSide(normalSide)
	a.InitialBalance = numericToDecimal(initialBalance)
	a.Balance = numericToDecimal(balance)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
