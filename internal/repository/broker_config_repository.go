package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
)

// BrokerConfigRepository stores the Schwab integration settings. The bearer
// token is fernet-encrypted before it touches the database and decrypted on
// the way out; the plaintext never persists.
type BrokerConfigRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewBrokerConfigRepository creates a repository using the given base64
// fernet key for token encryption.
func NewBrokerConfigRepository(db *sql.DB, encryptionKey string) (*BrokerConfigRepository, error) {
	keys, err := fernet.DecodeKeys(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode broker encryption key: %w", err)
	}
	return &BrokerConfigRepository{db: db, key: keys[0]}, nil
}

// GetConfig retrieves the broker configuration with the token decrypted.
// Fails with apperrors.ErrBrokerConfigNotFound when none has been saved.
func (r *BrokerConfigRepository) GetConfig() (*model.BrokerConfig, error) {
	row := r.db.QueryRow(`
		SELECT id, enabled, token_encrypted, token_expires_at, updated_at
		FROM broker_config
		LIMIT 1
	`)

	var config model.BrokerConfig
	var encrypted, expiresAt sql.NullString
	var updatedAt string

	err := row.Scan(&config.ID, &config.Enabled, &encrypted, &expiresAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrBrokerConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query broker config: %w", err)
	}

	if encrypted.Valid && encrypted.String != "" {
		plain := fernet.VerifyAndDecrypt([]byte(encrypted.String), 0, []*fernet.Key{r.key})
		if plain == nil {
			return nil, fmt.Errorf("failed to decrypt broker token")
		}
		config.Token = string(plain)
	}

	if expiresAt.Valid && expiresAt.String != "" {
		t, err := parseTimestamp(expiresAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse token expiry: %w", err)
		}
		config.TokenExpiresAt = &t
	}

	if config.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse broker config updated_at: %w", err)
	}

	return &config, nil
}

// SaveConfig inserts or replaces the broker configuration, encrypting the
// token at rest.
func (r *BrokerConfigRepository) SaveConfig(config *model.BrokerConfig) (*model.BrokerConfig, error) {
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	config.UpdatedAt = time.Now().UTC()

	var encrypted string
	if config.Token != "" {
		tok, err := fernet.EncryptAndSign([]byte(config.Token), r.key)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt broker token: %w", err)
		}
		encrypted = string(tok)
	}

	var expiresAt any
	if config.TokenExpiresAt != nil {
		expiresAt = config.TokenExpiresAt.UTC().Format(time.RFC3339)
	}

	// Single-row table: the config is replaced wholesale on every save.
	_, err := r.db.Exec(`DELETE FROM broker_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to clear broker config: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO broker_config (id, enabled, token_encrypted, token_expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, config.ID, config.Enabled, encrypted, expiresAt, config.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to save broker config: %w", err)
	}

	return config, nil
}
