package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/dto"
	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	BalanceSheet(ctx context.Context, rng usecase.DateRange) (*domain.BalanceSheet, string, error)
	IncomeStatement(ctx context.Context, rng usecase.DateRange) (*domain.IncomeStatement, string, error)
	TrialBalance(ctx context.Context, rng usecase.DateRange) (*domain.TrialBalance, string, error)
	Ratios(ctx context.Context, at time.Time) (*domain.Ratios, error)
}

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// BalanceSheet serves the balance sheet for ?start=...&end=...
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	bs, url, err := h.reportUC.BalanceSheet(r.Context(), rng)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(bs, url))
}

// IncomeStatement serves the income statement for ?start=...&end=...
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	is, url, err := h.reportUC.IncomeStatement(r.Context(), rng)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build income statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(is, url))
}

// TrialBalance serves the trial balance for ?start=...&end=...
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	tb, url, err := h.reportUC.TrialBalance(r.Context(), rng)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb, url))
}

// Ratios serves the month-to-date dashboard ratios.
func (h *ReportHandler) Ratios(w http.ResponseWriter, r *http.Request) {
	ratios, err := h.reportUC.Ratios(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute ratios", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatiosFromDomain(ratios))
}

func (h *ReportHandler) dateRange(w http.ResponseWriter, r *http.Request) (usecase.DateRange, bool) {
	rng, err := dto.ParseDateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return rng, false
	}

	return rng, true
}
