package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
	"github.com/ledgerlite/ledgerlite/internal/usecase/mocks"
)

type reportMocks struct {
	accountRepo *mocks.MockAccountRepository
	journalRepo *mocks.MockJournalRepository
	docStore    *mocks.MockDocumentStore
	cache       *mocks.MockCache
}

func newReportUseCase(t *testing.T) (*usecase.ReportUseCase, *reportMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &reportMocks{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		journalRepo: mocks.NewMockJournalRepository(ctrl),
		docStore:    mocks.NewMockDocumentStore(ctrl),
		cache:       mocks.NewMockCache(ctrl),
	}

	uc := usecase.NewReportUseCase(
		m.accountRepo, m.journalRepo, m.docStore, m.cache,
		time.Minute, nil, zerolog.Nop(),
	)

	return uc, m
}

var reportRange = usecase.DateRange{
	Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
}

func balanceSheetAccounts() []*domain.Account {
	return []*domain.Account{
		{Number: "1000", Name: "Cash", Category: domain.CategoryAssets, NormalSide: domain.SideDebit, InitialBalance: decimal.NewFromInt(1000)},
		{Number: "2000", Name: "Notes Payable", Category: domain.CategoryLiabilities, NormalSide: domain.SideCredit},
		{Number: "3000", Name: "Owner Equity", Category: domain.CategoryEquity, NormalSide: domain.SideCredit, InitialBalance: decimal.NewFromInt(1000)},
	}
}

func TestReportUseCase_BalanceSheet(t *testing.T) {
	uc, m := newReportUseCase(t)

	m.accountRepo.EXPECT().ListByCategories(gomock.Any(), domain.BalanceSheetCategories).
		Return(balanceSheetAccounts(), nil)
	m.journalRepo.EXPECT().
		FindApprovedLineItemsInRange(gomock.Any(), reportRange.Start, reportRange.End, []string{"1000", "2000", "3000"}).
		Return([]domain.LineItem{
			{AccountNumber: "1000", Debit: nullAmount("500.00")},
			{AccountNumber: "2000", Credit: nullAmount("500.00")},
		}, nil)
	m.docStore.EXPECT().Store(gomock.Any(), gomock.Any(), "text/csv", gomock.Any()).
		Return("http://files.local/balance_sheet.csv", nil)

	bs, url, err := uc.BalanceSheet(context.Background(), reportRange)

	require.NoError(t, err)
	assert.Equal(t, "http://files.local/balance_sheet.csv", url)
	assert.True(t, bs.TotalAssets.Equal(decimal.NewFromInt(1500)), "assets carry initial balance forward, got %s", bs.TotalAssets)
	assert.True(t, bs.TotalLiabilities.Equal(decimal.NewFromInt(500)))
	assert.True(t, bs.TotalEquity.Equal(decimal.NewFromInt(1000)))
}

func TestReportUseCase_BalanceSheetArtifactFailureTolerated(t *testing.T) {
	uc, m := newReportUseCase(t)

	m.accountRepo.EXPECT().ListByCategories(gomock.Any(), domain.BalanceSheetCategories).
		Return(balanceSheetAccounts(), nil)
	m.journalRepo.EXPECT().
		FindApprovedLineItemsInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)
	m.docStore.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("disk full"))

	bs, url, err := uc.BalanceSheet(context.Background(), reportRange)

	require.NoError(t, err, "the report is still served when artifact storage fails")
	assert.Empty(t, url)
	assert.NotNil(t, bs)
}

func TestReportUseCase_IncomeStatement(t *testing.T) {
	uc, m := newReportUseCase(t)

	m.accountRepo.EXPECT().ListByCategories(gomock.Any(), domain.IncomeStatementCategories).
		Return([]*domain.Account{
			{Number: "4000", Name: "Sales", Category: domain.CategoryRevenue, NormalSide: domain.SideCredit, InitialBalance: decimal.NewFromInt(9999)},
			{Number: "5000", Name: "Rent", Category: domain.CategoryExpenses, NormalSide: domain.SideDebit},
		}, nil)
	m.journalRepo.EXPECT().
		FindApprovedLineItemsInRange(gomock.Any(), reportRange.Start, reportRange.End, []string{"4000", "5000"}).
		Return([]domain.LineItem{
			{AccountNumber: "4000", Credit: nullAmount("1000.00")},
			{AccountNumber: "5000", Debit: nullAmount("600.00")},
		}, nil)
	m.docStore.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("u", nil)

	is, _, err := uc.IncomeStatement(context.Background(), reportRange)

	require.NoError(t, err)
	assert.True(t, is.TotalRevenue.Equal(decimal.NewFromInt(1000)), "revenue seeds at zero, got %s", is.TotalRevenue)
	assert.True(t, is.TotalExpenses.Equal(decimal.NewFromInt(600)))
	assert.True(t, is.NetIncome.Equal(decimal.NewFromInt(400)))
}

func TestReportUseCase_TrialBalanceTotalsMatch(t *testing.T) {
	uc, m := newReportUseCase(t)

	accounts := append(balanceSheetAccounts(),
		&domain.Account{Number: "4000", Name: "Sales", Category: domain.CategoryRevenue, NormalSide: domain.SideCredit},
		&domain.Account{Number: "5000", Name: "Rent", Category: domain.CategoryExpenses, NormalSide: domain.SideDebit},
	)

	m.accountRepo.EXPECT().ListAll(gomock.Any()).Return(accounts, nil)
	m.journalRepo.EXPECT().
		FindApprovedLineItemsInRange(gomock.Any(), reportRange.Start, reportRange.End, nil).
		Return([]domain.LineItem{
			{AccountNumber: "1000", Debit: nullAmount("1000.00")},
			{AccountNumber: "4000", Credit: nullAmount("1000.00")},
			{AccountNumber: "5000", Debit: nullAmount("600.00")},
			{AccountNumber: "1000", Credit: nullAmount("600.00")},
		}, nil)
	m.docStore.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("u", nil)

	tb, _, err := uc.TrialBalance(context.Background(), reportRange)

	require.NoError(t, err)
	require.Len(t, tb.Rows, 5)
	// Initial balances of 1000 cash and 1000 equity plus fully posted
	// entries keep the columns equal.
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit),
		"debits %s, credits %s", tb.TotalDebit, tb.TotalCredit)
}

func TestReportUseCase_RejectsInvertedRange(t *testing.T) {
	uc, _ := newReportUseCase(t)

	_, _, err := uc.BalanceSheet(context.Background(), usecase.DateRange{
		Start: reportRange.End,
		End:   reportRange.Start,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportUseCase_RatiosCacheMiss(t *testing.T) {
	uc, m := newReportUseCase(t)

	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	m.cache.EXPECT().Get(gomock.Any(), "ledgerlite:ratios:2026-03").Return(nil, errors.New("miss"))

	m.accountRepo.EXPECT().ListByCategories(gomock.Any(), domain.IncomeStatementCategories).
		Return([]*domain.Account{
			{Number: "4000", Category: domain.CategoryRevenue, NormalSide: domain.SideCredit},
			{Number: "5000", Category: domain.CategoryExpenses, NormalSide: domain.SideDebit},
		}, nil)
	m.accountRepo.EXPECT().ListByCategories(gomock.Any(), domain.BalanceSheetCategories).
		Return(balanceSheetAccounts(), nil)
	m.journalRepo.EXPECT().
		FindApprovedLineItemsInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.LineItem{
			{AccountNumber: "4000", Credit: nullAmount("1000.00")},
			{AccountNumber: "5000", Debit: nullAmount("600.00")},
		}, nil).
		Times(2)
	m.docStore.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("u", nil)
	m.cache.EXPECT().Set(gomock.Any(), "ledgerlite:ratios:2026-03", gomock.Any(), time.Minute).Return(nil)

	r, err := uc.Ratios(context.Background(), at)

	require.NoError(t, err)
	assert.True(t, r.GrossProfit.Equal(decimal.NewFromInt(400)))
	require.True(t, r.GrossProfitMargin.Valid)
	assert.True(t, r.GrossProfitMargin.Decimal.Equal(decimal.RequireFromString("0.4")))
}

func TestReportUseCase_RatiosCacheHit(t *testing.T) {
	uc, m := newReportUseCase(t)

	cached := domain.Ratios{GrossProfit: decimal.NewFromInt(42)}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	m.cache.EXPECT().Get(gomock.Any(), "ledgerlite:ratios:2026-03").Return(payload, nil)

	r, err := uc.Ratios(context.Background(), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, r.GrossProfit.Equal(decimal.NewFromInt(42)), "cached value must be served without recomputation")
}
