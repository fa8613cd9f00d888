package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/dto"
	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Actor, number string, input usecase.UpdateAccountInput) (*domain.Account, error)
	ArchiveAccount(ctx context.Context, actor domain.Actor, number string) error
	GetAccount(ctx context.Context, number string) (*domain.Account, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
	GetLedger(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error)
}

// AccountHandler handles chart-of-accounts HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), a, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Update applies a partial update to an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	number := chi.URLParam(r, "number")

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), a, number, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Archive archives an account. Accounts are never deleted.
func (h *AccountHandler) Archive(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	number := chi.URLParam(r, "number")

	if err := h.accountUC.ArchiveAccount(r.Context(), a, number); err != nil {
		writeError(w, mapDomainError(err), "failed to archive account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves an account by number.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	account, err := h.accountUC.GetAccount(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists active accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Ledger returns the account's posted lines with a running balance.
func (h *AccountHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	account, lines, err := h.accountUC.GetLedger(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(account, lines))
}
