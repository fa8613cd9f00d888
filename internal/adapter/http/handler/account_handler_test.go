package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/dto"
	"github.com/ledgerlite/ledgerlite/internal/adapter/http/middleware"
	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

type accountServiceStub struct {
	createFn  func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error)
	updateFn  func(ctx context.Context, actor domain.Actor, number string, input usecase.UpdateAccountInput) (*domain.Account, error)
	archiveFn func(ctx context.Context, actor domain.Actor, number string) error
	getFn     func(ctx context.Context, number string) (*domain.Account, error)
	listFn    func(ctx context.Context) ([]*domain.Account, error)
	ledgerFn  func(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, actor, input)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, actor domain.Actor, number string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, actor, number, input)
}

func (s *accountServiceStub) ArchiveAccount(ctx context.Context, actor domain.Actor, number string) error {
	return s.archiveFn(ctx, actor, number)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	return s.getFn(ctx, number)
}

func (s *accountServiceStub) ListActive(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *accountServiceStub) GetLedger(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error) {
	return s.ledgerFn(ctx, number)
}

func emptyAccountStub() *accountServiceStub {
	return &accountServiceStub{
		createFn: func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, nil
		},
		updateFn: func(ctx context.Context, actor domain.Actor, number string, input usecase.UpdateAccountInput) (*domain.Account, error) {
			return nil, nil
		},
		archiveFn: func(ctx context.Context, actor domain.Actor, number string) error { return nil },
		getFn:     func(ctx context.Context, number string) (*domain.Account, error) { return nil, nil },
		listFn:    func(ctx context.Context) ([]*domain.Account, error) { return nil, nil },
		ledgerFn: func(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error) {
			return nil, nil, nil
		},
	}
}

func withTestActor(r *http.Request, role domain.Role) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{
		ID:    "user-1",
		Email: "user@example.com",
		Role:  role,
	}))
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		Number:     "1000",
		Name:       "Cash",
		Category:   domain.CategoryAssets,
		NormalSide: domain.SideDebit,
	}

	var captured usecase.CreateAccountInput
	stub := emptyAccountStub()
	stub.createFn = func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
		captured = input
		return account, nil
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{
		NumberSuffix:   "000",
		Name:           "Cash",
		Category:       "assets",
		NormalSide:     "debit",
		InitialBalance: decimal.NewFromInt(500),
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = withTestActor(req, domain.RoleAdmin)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.NumberSuffix != "000" || captured.Category != domain.CategoryAssets {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Number != "1000" {
		t.Fatalf("expected account number 1000, got %s", resp.Number)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	stub := emptyAccountStub()
	stub.createFn = func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
		t.Fatal("CreateAccount should not be called for invalid payload")
		return nil, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	req = withTestActor(req, domain.RoleAdmin)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_MissingActor(t *testing.T) {
	stub := emptyAccountStub()
	stub.createFn = func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
		t.Fatal("CreateAccount should not be called without an actor")
		return nil, nil
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{NumberSuffix: "000", Name: "Cash"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_Forbidden(t *testing.T) {
	stub := emptyAccountStub()
	stub.createFn = func(ctx context.Context, actor domain.Actor, input usecase.CreateAccountInput) (*domain.Account, error) {
		return nil, domain.ErrForbidden
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{NumberSuffix: "000", Name: "Cash", Category: "assets"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = withTestActor(req, domain.RoleRegular)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	stub := emptyAccountStub()
	stub.getFn = func(ctx context.Context, number string) (*domain.Account, error) {
		if number != "1000" {
			t.Fatalf("expected number 1000, got %s", number)
		}
		return &domain.Account{Number: "1000", Name: "Cash"}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/1000", nil)
	req = setChiURLParam(req, "number", "1000")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	stub := emptyAccountStub()
	stub.getFn = func(ctx context.Context, number string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/9999", nil)
	req = setChiURLParam(req, "number", "9999")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Archive_NonZeroBalance(t *testing.T) {
	stub := emptyAccountStub()
	stub.archiveFn = func(ctx context.Context, actor domain.Actor, number string) error {
		return domain.ErrNonZeroBalance
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/1000/archive", nil)
	req = withTestActor(req, domain.RoleAdmin)
	req = setChiURLParam(req, "number", "1000")
	rec := httptest.NewRecorder()

	handler.Archive(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAccountHandler_Archive_Success(t *testing.T) {
	stub := emptyAccountStub()
	var archived string
	stub.archiveFn = func(ctx context.Context, actor domain.Actor, number string) error {
		archived = number
		return nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/1000/archive", nil)
	req = withTestActor(req, domain.RoleAdmin)
	req = setChiURLParam(req, "number", "1000")
	rec := httptest.NewRecorder()

	handler.Archive(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if archived != "1000" {
		t.Fatalf("expected account 1000 archived, got %q", archived)
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := emptyAccountStub()
	stub.listFn = func(ctx context.Context) ([]*domain.Account, error) {
		return []*domain.Account{{Number: "1000"}, {Number: "2000"}}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func TestAccountHandler_Ledger(t *testing.T) {
	account := &domain.Account{Number: "1000", Name: "Cash", NormalSide: domain.SideDebit}
	stub := emptyAccountStub()
	stub.ledgerFn = func(ctx context.Context, number string) (*domain.Account, []domain.LedgerLine, error) {
		return account, []domain.LedgerLine{
			{Line: domain.LineItem{ID: "li-1", AccountNumber: "1000"}, Balance: decimal.NewFromInt(1500)},
		}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/1000/ledger", nil)
	req = setChiURLParam(req, "number", "1000")
	rec := httptest.NewRecorder()

	handler.Ledger(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.LedgerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("expected 1 ledger line, got %d", len(resp.Lines))
	}
}
