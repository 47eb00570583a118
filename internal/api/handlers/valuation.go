package handlers

import (
	"net/http"
	"strconv"

	"github.com/lotledger/lotledger/internal/api/response"
	"github.com/lotledger/lotledger/internal/portfolio"
	"github.com/lotledger/lotledger/internal/service"
)

// ValuationHandler handles portfolio valuation HTTP requests.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// Snapshot returns the public position table for the requested accounts
// (all when omitted) as of an optional historical date.
//
// Endpoint: GET /api/portfolio/snapshot?accounts=a,b&asOf=2006-01-02
func (h *ValuationHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "asOf")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid asOf date", err.Error())
		return
	}

	positions, err := h.valuationService.Snapshot(r.Context(), queryList(r, "accounts"), asOf)
	if err != nil {
		respondServiceError(w, "failed to build snapshot", err)
		return
	}
	respondJSON(w, http.StatusOK, positions)
}

// UpcomingLTCG returns short-term lots projected to cross the long-term
// threshold within the requested window (default 7 days).
//
// Endpoint: GET /api/portfolio/ltcg?withinDays=7&symbols=ABC,DEF&accounts=a&asOf=2006-01-02
func (h *ValuationHandler) UpcomingLTCG(w http.ResponseWriter, r *http.Request) {
	withinDays := 7
	if raw := r.URL.Query().Get("withinDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid withinDays", raw)
			return
		}
		withinDays = parsed
	}

	asOf, err := queryDate(r, "asOf")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid asOf date", err.Error())
		return
	}

	filter := portfolio.NoFilter()
	if symbols := queryList(r, "symbols"); len(symbols) == 1 {
		filter = portfolio.FilterSymbol(symbols[0])
	} else if len(symbols) > 1 {
		filter = portfolio.FilterSymbols(symbols)
	}

	lots, err := h.valuationService.UpcomingLTCGLots(r.Context(), queryList(r, "accounts"), asOf, withinDays, filter)
	if err != nil {
		respondServiceError(w, "failed to find upcoming long-term lots", err)
		return
	}
	respondJSON(w, http.StatusOK, lots)
}
