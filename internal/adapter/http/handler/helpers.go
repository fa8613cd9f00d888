package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/dto"
	"github.com/ledgerlite/ledgerlite/internal/adapter/http/middleware"
	"github.com/ledgerlite/ledgerlite/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateAccountNumber),
		errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNonZeroBalance),
		errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrUnknownAccount),
		errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// actor pulls the caller identity placed in the context by the actor
// middleware.
func actor(r *http.Request, w http.ResponseWriter) (domain.Actor, bool) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing caller identity", "")
		return domain.Actor{}, false
	}

	return a, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
