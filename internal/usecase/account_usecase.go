package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/metrics"
)

// AccountUseCase implements chart-of-accounts management.
type AccountUseCase struct {
	accountRepo AccountRepository
	journalRepo JournalRepository
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, journalRepo JournalRepository, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account. The
// account number is built by prefixing the category digit to
// NumberSuffix.
type CreateAccountInput struct {
	NumberSuffix   string
	Name           string
	Description    string
	Category       domain.AccountCategory
	Subcategory    string
	NormalSide     domain.NormalSide
	InitialBalance decimal.Decimal
	Order          int
	Statement      string
}

// CreateAccount creates a new account. Only admins may manage the
// chart of accounts.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, actor domain.Actor, input CreateAccountInput) (*domain.Account, error) {
	if !actor.Role.CanManageAccounts() {
		return nil, domain.ErrForbidden
	}

	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown account category %q", domain.ErrValidation, input.Category)
	}

	if !input.NormalSide.IsValid() {
		return nil, fmt.Errorf("%w: normal side must be debit or credit", domain.ErrValidation)
	}

	number, err := domain.BuildAccountNumber(input.Category, input.NumberSuffix)
	if err != nil {
		return nil, err
	}

	exists, err := uc.accountRepo.ActiveNumberExists(ctx, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, number)
	}

	now := time.Now().UTC()

	account := &domain.Account{
		Number:         number,
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Subcategory:    input.Subcategory,
		NormalSide:     input.NormalSide,
		InitialBalance: input.InitialBalance,
		Balance:        input.InitialBalance,
		Order:          input.Order,
		Statement:      input.Statement,
		CreatedBy:      actor.ID,
		LastModifiedBy: actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountCreated()

	return account, nil
}

// UpdateAccountInput is a partial update; nil fields are left
// untouched. Balances are never patched here; only approved journal
// entries move balances.
type UpdateAccountInput struct {
	Name        *string
	Description *string
	Subcategory *string
	Order       *int
	Statement   *string
}

// UpdateAccount applies a partial update to an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, actor domain.Actor, number string, input UpdateAccountInput) (*domain.Account, error) {
	if !actor.Role.CanManageAccounts() {
		return nil, domain.ErrForbidden
	}

	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = *input.Name
	}
	if input.Description != nil {
		account.Description = *input.Description
	}
	if input.Subcategory != nil {
		account.Subcategory = *input.Subcategory
	}
	if input.Order != nil {
		account.Order = *input.Order
	}
	if input.Statement != nil {
		account.Statement = *input.Statement
	}

	account.LastModifiedBy = actor.ID
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ArchiveAccount archives an account. Accounts are never physically
// deleted, and only a zero-balance account may be archived.
func (uc *AccountUseCase) ArchiveAccount(ctx context.Context, actor domain.Actor, number string) error {
	if !actor.Role.CanManageAccounts() {
		return domain.ErrForbidden
	}

	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	if err := account.CanArchive(); err != nil {
		return err
	}

	if err := uc.accountRepo.SetArchived(ctx, number, true, actor.ID, time.Now().UTC()); err != nil {
		return err
	}

	uc.metrics.AccountArchived()

	return nil
}

// GetAccount retrieves an account by number.
func (uc *AccountUseCase) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListActive lists non-archived accounts ordered by display order.
func (uc *AccountUseCase) ListActive(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.ListActive(ctx)
}

// GetLedger returns the account's approved line items with a running
// balance seeded from the initial balance.
func (uc *AccountUseCase) GetLedger(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	lines, err := uc.journalRepo.FindApprovedLineItemsByAccount(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	running := account.InitialBalance
	ledger := make([]domain.LedgerLine, 0, len(lines))
	for _, l := range lines {
		running = running.Add(account.SignedDelta(l.DebitAmount(), l.CreditAmount()))
		ledger = append(ledger, domain.LedgerLine{Line: l, Balance: running})
	}

	return account, ledger, nil
}
