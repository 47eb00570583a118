package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lotledger/lotledger/internal/api/response"
	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/validation"
)

// respondJSON is a package-local alias for the shared response helper.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondServiceError maps domain errors onto HTTP status codes. Validation
// and caller mistakes are 400s, missing data is a 404, anything else is a
// 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var validationErr *validation.Error

	switch {
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
	case errors.Is(err, apperrors.ErrUnsupportedPlatform),
		errors.Is(err, apperrors.ErrInvalidAsOfDate),
		errors.Is(err, apperrors.ErrUnsupportedSymbolFilter),
		errors.Is(err, apperrors.ErrNoTransactions),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrBrokerDisabled):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, apperrors.ErrPriceNotFound),
		errors.Is(err, apperrors.ErrMissingPriceCache),
		errors.Is(err, apperrors.ErrBrokerConfigNotFound):
		response.RespondError(w, http.StatusNotFound, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

// queryList splits a comma-separated query parameter into its non-empty
// elements.
func queryList(r *http.Request, key string) []string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// queryDate parses an optional "2006-01-02" query parameter, returning the
// zero time when absent.
func queryDate(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	return validation.ParseTime(raw)
}
