package validation

import (
	"strings"

	"github.com/lotledger/lotledger/internal/api/request"
)

// ValidPlatforms contains the provider identifiers the normalizer supports.
var ValidPlatforms = map[string]bool{
	"schwab": true, "marcus": true,
}

// ValidateImportTransactions validates a ledger import request.
//
// Required fields:
//   - platform: Must be a supported provider identifier
//   - account: Must be non-empty
//   - rows: Must contain at least one row
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateImportTransactions(req request.ImportTransactionsRequest) error {
	errors := make(map[string]string)

	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		errors["platform"] = "platform is required"
	} else if !ValidPlatforms[platform] {
		errors["platform"] = "unsupported platform: " + req.Platform
	}

	if strings.TrimSpace(req.Account) == "" {
		errors["account"] = "account is required"
	}

	if len(req.Rows) == 0 {
		errors["rows"] = "at least one transaction row is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
