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

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	SubmitEntry(ctx context.Context, actor domain.Actor, input usecase.SubmitEntryInput) (*domain.JournalEntry, error)
	ApproveEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)
	RejectEntry(ctx context.Context, actor domain.Actor, entryID, reason string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.JournalEntry, error)
}

// JournalHandler handles journal entry HTTP requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Submit submits a journal entry for review.
func (h *JournalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	var req dto.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.journalUC.SubmitEntry(r.Context(), a, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Approve posts a pending entry to the ledger.
func (h *JournalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	entry, err := h.journalUC.ApproveEntry(r.Context(), a, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to approve journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Reject rejects a pending entry with a reason.
func (h *JournalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(r, w)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.RejectEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.journalUC.RejectEntry(r.Context(), a, id, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reject journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Get retrieves a journal entry.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.journalUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists journal entries by status.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.StatusPending)
	}

	entries, err := h.journalUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Status: domain.EntryStatus(status),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list journal entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}
