package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lotledger/lotledger/internal/api/request"
	"github.com/lotledger/lotledger/internal/api/response"
	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/service"
	"github.com/lotledger/lotledger/internal/validation"
)

// BrokerHandler handles broker integration HTTP requests.
type BrokerHandler struct {
	brokerService *service.BrokerService
}

// NewBrokerHandler creates a new BrokerHandler
func NewBrokerHandler(brokerService *service.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService}
}

// BrokerConfigResponse reports the integration state without ever exposing
// the token itself.
type BrokerConfigResponse struct {
	Enabled        bool       `json:"enabled"`
	TokenSet       bool       `json:"tokenSet"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenWarning   string     `json:"tokenWarning,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// GetConfig returns the broker integration configuration.
//
// Endpoint: GET /api/broker/config
func (h *BrokerHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.brokerService.GetConfig()
	if err != nil {
		respondServiceError(w, "failed to retrieve broker config", err)
		return
	}
	respondJSON(w, http.StatusOK, configResponse(config))
}

// UpdateConfig replaces the broker integration configuration.
//
// Endpoint: PUT /api/broker/config
func (h *BrokerHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBrokerConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateBrokerConfig(req); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	config, err := h.brokerService.GetConfig()
	if err != nil && err != apperrors.ErrBrokerConfigNotFound {
		respondServiceError(w, "failed to retrieve broker config", err)
		return
	}
	if config == nil {
		config = &model.BrokerConfig{}
	}

	if req.Enabled != nil {
		config.Enabled = *req.Enabled
	}
	if req.Token != nil {
		config.Token = *req.Token
	}
	if req.TokenExpiresAt != nil {
		expires, err := validation.ParseTime(*req.TokenExpiresAt)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid tokenExpiresAt", err.Error())
			return
		}
		config.TokenExpiresAt = &expires
	}

	saved, err := h.brokerService.UpdateConfig(config)
	if err != nil {
		respondServiceError(w, "failed to save broker config", err)
		return
	}
	respondJSON(w, http.StatusOK, configResponse(saved))
}

// SyncResponse reports how many trades a broker sync appended.
type SyncResponse struct {
	Imported int `json:"imported"`
}

// Sync pulls trades from the broker API into the ledger.
//
// Endpoint: POST /api/broker/sync
func (h *BrokerHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req request.SyncTradesRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	var start time.Time
	if req.StartDate != "" {
		var err error
		if start, err = validation.ParseTime(req.StartDate); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid startDate", err.Error())
			return
		}
	}

	imported, err := h.brokerService.SyncTrades(r.Context(), start)
	if err != nil {
		respondServiceError(w, "failed to sync broker trades", err)
		return
	}
	respondJSON(w, http.StatusOK, SyncResponse{Imported: len(imported)})
}

func configResponse(config *model.BrokerConfig) BrokerConfigResponse {
	return BrokerConfigResponse{
		Enabled:        config.Enabled,
		TokenSet:       config.Token != "",
		TokenExpiresAt: config.TokenExpiresAt,
		TokenWarning:   config.TokenWarning,
		UpdatedAt:      config.UpdatedAt,
	}
}
