package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/metrics"
)

const ratioCacheKeyPrefix = "ledgerlite:ratios:"

// ReportUseCase implements the reporting engine. Reports are derived
// from approved line items on demand and never stored as primary
// records; only the rendered CSV artifact is persisted.
type ReportUseCase struct {
	accountRepo AccountRepository
	journalRepo JournalRepository
	docStore    DocumentStore
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	docStore DocumentStore,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		docStore:    docStore,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
		logger:      logger,
	}
}

// DateRange is an inclusive report window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks the range is present and ordered.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}

	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: end date precedes start date", domain.ErrValidation)
	}

	return nil
}

// BalanceSheet builds the balance sheet for the range and stores a CSV
// rendering. The returned URL is empty when artifact storage fails;
// the report itself is still served.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, rng DateRange) (*domain.BalanceSheet, string, error) {
	if err := rng.Validate(); err != nil {
		return nil, "", err
	}

	accounts, err := uc.accountRepo.ListByCategories(ctx, domain.BalanceSheetCategories)
	if err != nil {
		return nil, "", err
	}

	lines, err := uc.findLines(ctx, rng, accounts)
	if err != nil {
		return nil, "", err
	}

	bs := &domain.BalanceSheet{Start: rng.Start, End: rng.End}

	for _, account := range accounts {
		// Balance sheet accounts carry their initial balance forward.
		balance := domain.AccumulateBalance(account, account.InitialBalance, lines)
		ab := domain.AccountBalance{Number: account.Number, Name: account.Name, Balance: balance}

		switch account.Category {
		case domain.CategoryAssets:
			bs.Assets = append(bs.Assets, ab)
			bs.TotalAssets = bs.TotalAssets.Add(balance)
		case domain.CategoryLiabilities:
			bs.Liabilities = append(bs.Liabilities, ab)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(balance)
		case domain.CategoryEquity:
			bs.Equity = append(bs.Equity, ab)
			bs.TotalEquity = bs.TotalEquity.Add(balance)
		}
	}

	uc.metrics.ReportGenerated("balance_sheet")
	url := uc.storeArtifact(ctx, "balance_sheet", rng, balanceSheetCSV(bs))

	return bs, url, nil
}

// IncomeStatement builds the income statement for the range and stores
// a CSV rendering. Revenue and expense accounts seed at zero.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, rng DateRange) (*domain.IncomeStatement, string, error) {
	if err := rng.Validate(); err != nil {
		return nil, "", err
	}

	is, err := uc.buildIncomeStatement(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	uc.metrics.ReportGenerated("income_statement")
	url := uc.storeArtifact(ctx, "income_statement", rng, incomeStatementCSV(is))

	return is, url, nil
}

// TrialBalance lists every account, archived included, with its ending
// balance routed to the column of its normal side.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, rng DateRange) (*domain.TrialBalance, string, error) {
	if err := rng.Validate(); err != nil {
		return nil, "", err
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	lines, err := uc.journalRepo.FindApprovedLineItemsInRange(ctx, rng.Start, rng.End, nil)
	if err != nil {
		return nil, "", err
	}

	tb := &domain.TrialBalance{Start: rng.Start, End: rng.End}

	for _, account := range accounts {
		seed := decimal.Zero
		if account.Category.OnBalanceSheet() {
			seed = account.InitialBalance
		}

		balance := domain.AccumulateBalance(account, seed, lines)

		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			Number:     account.Number,
			Name:       account.Name,
			NormalSide: account.NormalSide,
			Balance:    balance,
		})

		if account.NormalSide == domain.SideDebit {
			tb.TotalDebit = tb.TotalDebit.Add(balance)
		} else {
			tb.TotalCredit = tb.TotalCredit.Add(balance)
		}
	}

	uc.metrics.ReportGenerated("trial_balance")
	url := uc.storeArtifact(ctx, "trial_balance", rng, trialBalanceCSV(tb))

	return tb, url, nil
}

// Ratios computes the month-to-date dashboard ratios at the given
// time, serving from cache when a fresh value exists.
func (uc *ReportUseCase) Ratios(ctx context.Context, at time.Time) (*domain.Ratios, error) {
	at = at.UTC()
	rng := DateRange{
		Start: time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   at,
	}

	key := ratioCacheKeyPrefix + rng.Start.Format("2006-01")

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != nil {
		var r domain.Ratios
		if err := json.Unmarshal(cached, &r); err == nil {
			return &r, nil
		}

		uc.logger.Warn().Str("key", key).Msg("discarding unreadable cached ratios")
	}

	is, err := uc.buildIncomeStatement(ctx, rng)
	if err != nil {
		return nil, err
	}

	bs, _, err := uc.BalanceSheet(ctx, rng)
	if err != nil {
		return nil, err
	}

	ratios := domain.ComputeRatios(is, bs)

	if payload, err := json.Marshal(ratios); err == nil {
		if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache ratios")
		}
	}

	return &ratios, nil
}

func (uc *ReportUseCase) buildIncomeStatement(ctx context.Context, rng DateRange) (*domain.IncomeStatement, error) {
	accounts, err := uc.accountRepo.ListByCategories(ctx, domain.IncomeStatementCategories)
	if err != nil {
		return nil, err
	}

	lines, err := uc.findLines(ctx, rng, accounts)
	if err != nil {
		return nil, err
	}

	is := &domain.IncomeStatement{Start: rng.Start, End: rng.End}

	for _, account := range accounts {
		balance := domain.AccumulateBalance(account, decimal.Zero, lines)
		ab := domain.AccountBalance{Number: account.Number, Name: account.Name, Balance: balance}

		switch account.Category {
		case domain.CategoryRevenue:
			is.Revenue = append(is.Revenue, ab)
			is.TotalRevenue = is.TotalRevenue.Add(balance)
		case domain.CategoryExpenses:
			is.Expenses = append(is.Expenses, ab)
			is.TotalExpenses = is.TotalExpenses.Add(balance)
		}
	}

	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)

	return is, nil
}

func (uc *ReportUseCase) findLines(ctx context.Context, rng DateRange, accounts []*domain.Account) ([]domain.LineItem, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	numbers := make([]string, 0, len(accounts))
	for _, a := range accounts {
		numbers = append(numbers, a.Number)
	}

	return uc.journalRepo.FindApprovedLineItemsInRange(ctx, rng.Start, rng.End, numbers)
}

// storeArtifact writes the rendered CSV to the document store. Failure
// to store is logged and tolerated.
func (uc *ReportUseCase) storeArtifact(ctx context.Context, kind string, rng DateRange, data []byte) string {
	name := fmt.Sprintf("%s_%s_%s.csv", kind, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))

	url, err := uc.docStore.Store(ctx, name, "text/csv", data)
	if err != nil {
		uc.logger.Warn().Err(err).Str("report", kind).Msg("failed to store report artifact")
		return ""
	}

	return url
}
