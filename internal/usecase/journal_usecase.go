package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/metrics"
)

// JournalUseCase implements the posting engine: journal entry
// submission, approval, and rejection.
type JournalUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	journalRepo JournalRepository
	userRepo    UserRepository
	notifier    Notifier
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	userRepo UserRepository,
	notifier Notifier,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     m,
		logger:      logger,
	}
}

// LineInput is one submitted journal row. Debit and Credit are null
// when the cell was left empty.
type LineInput struct {
	AccountName string
	Debit       decimal.NullDecimal
	Credit      decimal.NullDecimal
	Description string
}

// SubmitEntryInput represents input for submitting a journal entry.
type SubmitEntryInput struct {
	EntryDate     time.Time
	Type          domain.EntryType
	AttachmentURL string
	Lines         []LineInput
}

// SubmitEntry validates a draft entry and persists it as pending.
// Every line's account name is resolved against the chart of accounts
// at submission time; client-supplied account numbers are not trusted.
func (uc *JournalUseCase) SubmitEntry(ctx context.Context, actor domain.Actor, input SubmitEntryInput) (*domain.JournalEntry, error) {
	entryType := input.Type
	if entryType == "" {
		entryType = domain.TypeRegular
	}
	if !entryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", domain.ErrValidation, entryType)
	}

	if input.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", domain.ErrValidation)
	}

	lines := make([]domain.LineItem, 0, len(input.Lines))
	for _, li := range input.Lines {
		lines = append(lines, domain.LineItem{
			AccountName: li.AccountName,
			Debit:       li.Debit,
			Credit:      li.Credit,
			Description: li.Description,
		})
	}

	lines = domain.FilterBlankLines(lines)

	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	// Resolve account names to authoritative numbers before anything
	// is written.
	for i := range lines {
		account, err := uc.accountRepo.GetActiveByName(ctx, strings.TrimSpace(lines[i].AccountName))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d account %q", domain.ErrUnknownAccount, i, lines[i].AccountName)
		}

		lines[i].AccountName = account.Name
		lines[i].AccountNumber = account.Number
	}

	now := time.Now().UTC()

	entry := &domain.JournalEntry{
		ID:            uc.idGen.Generate(),
		CreatedBy:     actor.ID,
		EntryDate:     input.EntryDate,
		Type:          entryType,
		Status:        domain.StatusPending,
		AttachmentURL: input.AttachmentURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for i := range lines {
		lines[i].ID = uc.idGen.Generate()
		lines[i].EntryID = entry.ID
		lines[i].EntryDate = input.EntryDate
		lines[i].Type = entryType
	}
	entry.Lines = lines

	if err := uc.journalRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.metrics.EntrySubmitted()
	uc.notifyManagers(ctx, entry)

	return entry, nil
}

// ApproveEntry posts a pending entry to the ledger. All per-account
// balance updates and the status flip happen in one transaction with
// the accounts locked in sorted order; transient serialization
// failures are retried as a whole.
func (uc *JournalUseCase) ApproveEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	if !actor.Role.CanReviewEntries() {
		return nil, domain.ErrForbidden
	}

	var approved *domain.JournalEntry

	err := uc.retrier.Retry(ctx, func() error {
		entry, err := uc.approveOnce(ctx, actor, entryID)
		if err != nil {
			return err
		}

		approved = entry

		return nil
	})
	if err != nil {
		uc.metrics.PostingFailed(postingFailureReason(err))
		return nil, err
	}

	uc.metrics.EntryApproved()

	return approved, nil
}

func (uc *JournalUseCase) approveOnce(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entry, err := uc.journalRepo.GetEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.IsFinalized() {
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrAlreadyFinalized, entry.ID, entry.Status)
	}

	numbers := collectAccountNumbers(entry.Lines)
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no account numbers", domain.ErrUnknownAccount, entry.ID)
	}
	sort.Strings(numbers)

	accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, numbers)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.Number] = a
	}

	for _, number := range numbers {
		if accountMap[number] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, number)
		}
	}

	now := time.Now().UTC()

	for _, line := range entry.Lines {
		if line.AccountNumber == "" {
			return nil, fmt.Errorf("%w: line %s has no account number", domain.ErrUnknownAccount, line.ID)
		}

		account := accountMap[line.AccountNumber]
		delta := account.SignedDelta(line.DebitAmount(), line.CreditAmount())

		err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, account.Number, delta, entry.CreatedBy, actor.ID, now)
		if err != nil {
			return nil, &domain.PartialPostingError{AccountNumber: account.Number, Err: err}
		}
	}

	if err := uc.journalRepo.MarkApproved(ctx, tx, entry.ID, actor.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusApproved
	entry.ApprovedBy = actor.ID
	entry.UpdatedAt = now

	return entry, nil
}

// RejectEntry rejects a pending entry with a reason. No balances
// change; the original creator is notified.
func (uc *JournalUseCase) RejectEntry(ctx context.Context, actor domain.Actor, entryID, reason string) (*domain.JournalEntry, error) {
	if !actor.Role.CanReviewEntries() {
		return nil, domain.ErrForbidden
	}

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}

	entry, err := uc.journalRepo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.IsFinalized() {
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrAlreadyFinalized, entry.ID, entry.Status)
	}

	now := time.Now().UTC()

	if err := uc.journalRepo.MarkRejected(ctx, entryID, reason, now); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusRejected
	entry.RejectedReason = reason
	entry.UpdatedAt = now

	uc.metrics.EntryRejected()
	uc.notifyCreator(ctx, entry)

	return entry, nil
}

// GetEntry retrieves a journal entry with its line items.
func (uc *JournalUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetEntry(ctx, id)
}

// ListEntriesInput represents input for listing journal entries.
type ListEntriesInput struct {
	Status domain.EntryStatus
	Limit  int
	Offset int
}

// ListEntries lists journal entries by status, newest first.
func (uc *JournalUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.JournalEntry, error) {
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry status %q", domain.ErrValidation, input.Status)
	}

	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.journalRepo.ListByStatus(ctx, input.Status, input.Limit, input.Offset)
}

// notifyManagers emails every manager that a pending entry awaits
// review. Notification failure never fails the submission.
func (uc *JournalUseCase) notifyManagers(ctx context.Context, entry *domain.JournalEntry) {
	emails, err := uc.userRepo.EmailsByRole(ctx, domain.RoleManager)
	if err != nil {
		uc.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("failed to look up manager emails")
		return
	}

	if len(emails) == 0 {
		return
	}

	subject := "A new journal entry has been submitted"
	body := "There is a new journal entry that is ready for you to review, please log in to check it out."

	if err := uc.notifier.Send(ctx, emails, subject, body); err != nil {
		uc.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("failed to notify managers")
	}
}

// notifyCreator emails the entry's creator about the rejection.
func (uc *JournalUseCase) notifyCreator(ctx context.Context, entry *domain.JournalEntry) {
	creator, err := uc.userRepo.GetByID(ctx, entry.CreatedBy)
	if err != nil {
		uc.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("failed to look up entry creator")
		return
	}

	subject := fmt.Sprintf("Journal entry %s has been rejected", entry.ID)
	body := fmt.Sprintf("Your journal entry has been rejected for the following reason: %s. Please log in to view more information.", entry.RejectedReason)

	if err := uc.notifier.Send(ctx, []string{creator.Email}, subject, body); err != nil {
		uc.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("failed to notify entry creator")
	}
}

func collectAccountNumbers(lines []domain.LineItem) []string {
	seen := make(map[string]bool)

	var numbers []string
	for _, l := range lines {
		if l.AccountNumber == "" || seen[l.AccountNumber] {
			continue
		}

		seen[l.AccountNumber] = true
		numbers = append(numbers, l.AccountNumber)
	}

	return numbers
}

func postingFailureReason(err error) string {
	var ppe *domain.PartialPostingError
	if errors.As(err, &ppe) {
		return "partial_posting"
	}

	return "error"
}
