package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/dto"
	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

type reportServiceStub struct {
	balanceSheetFn    func(ctx context.Context, rng usecase.DateRange) (*domain.BalanceSheet, string, error)
	incomeStatementFn func(ctx context.Context, rng usecase.DateRange) (*domain.IncomeStatement, string, error)
	trialBalanceFn    func(ctx context.Context, rng usecase.DateRange) (*domain.TrialBalance, string, error)
	ratiosFn          func(ctx context.Context, at time.Time) (*domain.Ratios, error)
}

func (s *reportServiceStub) BalanceSheet(ctx context.Context, rng usecase.DateRange) (*domain.BalanceSheet, string, error) {
	return s.balanceSheetFn(ctx, rng)
}

func (s *reportServiceStub) IncomeStatement(ctx context.Context, rng usecase.DateRange) (*domain.IncomeStatement, string, error) {
	return s.incomeStatementFn(ctx, rng)
}

func (s *reportServiceStub) TrialBalance(ctx context.Context, rng usecase.DateRange) (*domain.TrialBalance, string, error) {
	return s.trialBalanceFn(ctx, rng)
}

func (s *reportServiceStub) Ratios(ctx context.Context, at time.Time) (*domain.Ratios, error) {
	return s.ratiosFn(ctx, at)
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	var captured usecase.DateRange
	handler := NewReportHandler(&reportServiceStub{
		balanceSheetFn: func(ctx context.Context, rng usecase.DateRange) (*domain.BalanceSheet, string, error) {
			captured = rng
			return &domain.BalanceSheet{
				Start:       rng.Start,
				End:         rng.End,
				TotalAssets: decimal.NewFromInt(1500),
			}, "http://localhost:8080/reports/balance_sheet.csv", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?start=2026-01-01&end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	handler.BalanceSheet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Start.IsZero() || captured.End.Before(captured.Start) {
		t.Fatalf("expected parsed range, got %+v", captured)
	}

	var resp dto.BalanceSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DocumentURL == "" {
		t.Fatal("expected document URL to propagate")
	}
}

func TestReportHandler_BalanceSheet_BadRange(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		balanceSheetFn: func(ctx context.Context, rng usecase.DateRange) (*domain.BalanceSheet, string, error) {
			t.Fatal("BalanceSheet should not be called for a malformed range")
			return nil, "", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?start=bogus&end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	handler.BalanceSheet(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_TrialBalance_InvertedRange(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		trialBalanceFn: func(ctx context.Context, rng usecase.DateRange) (*domain.TrialBalance, string, error) {
			return nil, "", domain.ErrValidation
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?start=2026-03-31&end=2026-01-01", nil)
	rec := httptest.NewRecorder()

	handler.TrialBalance(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestReportHandler_Ratios(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		ratiosFn: func(ctx context.Context, at time.Time) (*domain.Ratios, error) {
			return &domain.Ratios{
				Start:       time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC),
				End:         at,
				GrossProfit: decimal.NewFromInt(400),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/ratios", nil)
	rec := httptest.NewRecorder()

	handler.Ratios(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.RatiosResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.GrossProfit.String() != "400" {
		t.Fatalf("expected gross profit 400, got %s", resp.GrossProfit)
	}
}
