package handlers

import (
	"net/http"

	"github.com/lotledger/lotledger/internal/service"
)

// PricesHandler handles price cache HTTP requests.
type PricesHandler struct {
	priceService *service.PriceService
}

// NewPricesHandler creates a new PricesHandler
func NewPricesHandler(priceService *service.PriceService) *PricesHandler {
	return &PricesHandler{priceService: priceService}
}

// Refresh refreshes the price cache for every ledger symbol and persists
// the result. The same operation the scheduled job runs, triggered on
// demand.
//
// Endpoint: POST /api/prices/refresh
func (h *PricesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshAll(r.Context())
	if err != nil {
		respondServiceError(w, "failed to refresh prices", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
