package validation

import (
	"fmt"
	"strings"

	"github.com/lotledger/lotledger/internal/api/request"
)

// ValidateUpdateBrokerConfig validates a broker configuration update. A
// config being enabled requires a non-blank token; an expiry, when given,
// must parse and lie in a recognized date format.
func ValidateUpdateBrokerConfig(req request.UpdateBrokerConfigRequest) error {
	errors := make(map[string]string)

	if req.Enabled != nil && *req.Enabled {
		if req.Token == nil || strings.TrimSpace(*req.Token) == "" {
			errors["token"] = "token must be set when enabling the integration"
		}
	}

	if req.TokenExpiresAt != nil && strings.TrimSpace(*req.TokenExpiresAt) != "" {
		t, err := ParseTime(*req.TokenExpiresAt)
		if err != nil {
			errors["tokenExpiresAt"] = fmt.Sprintf("tokenExpiresAt cannot be parsed: %v", err)
		} else if t.IsZero() {
			errors["tokenExpiresAt"] = "tokenExpiresAt must be set"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
