package model

import "time"

// BrokerConfig holds the Schwab trader-API integration settings. The bearer
// token is stored encrypted at rest; the repository layer decrypts it before
// populating Token.
type BrokerConfig struct {
	ID             string     `json:"id"`
	Enabled        bool       `json:"enabled"`
	Token          string     `json:"-"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenWarning   string     `json:"tokenWarning,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
