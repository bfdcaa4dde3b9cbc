package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/luminafin/lumina/internal/adapter/http/dto"
	"github.com/luminafin/lumina/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to an HTTP response. Validation
// failures carry the full problem list so clients can show every issue
// at once.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:    message,
			Problems: verr.Problems,
		})
		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var ferr *domain.FormatError
	var cerr *domain.CollaboratorError

	switch {
	case errors.As(err, &ferr):
		return http.StatusBadRequest
	case errors.As(err, &cerr):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrSameWallet),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
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

// parseMonthQuery parses a ?month=2006-01 query parameter, defaulting
// to the current month.
func parseMonthQuery(r *http.Request, now func() time.Time) (time.Time, error) {
	val := r.URL.Query().Get("month")
	if val == "" {
		return now(), nil
	}
	return time.Parse("2006-01", val)
}
