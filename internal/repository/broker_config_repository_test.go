package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/repository"
	"github.com/lotledger/lotledger/internal/testutil"
)

// testFernetKey is a fixed 32-byte key, base64-encoded, valid only for tests.
const testFernetKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestBrokerConfigRepository(t *testing.T) {
	t.Run("rejects a malformed encryption key", func(t *testing.T) {
		if _, err := repository.NewBrokerConfigRepository(testutil.SetupTestDB(t), "not-a-key"); err == nil {
			t.Fatal("Expected an error for a malformed key")
		}
	})

	t.Run("missing config fails with not found", func(t *testing.T) {
		repo, err := repository.NewBrokerConfigRepository(testutil.SetupTestDB(t), testFernetKey)
		if err != nil {
			t.Fatalf("NewBrokerConfigRepository() returned unexpected error: %v", err)
		}

		if _, err := repo.GetConfig(); !errors.Is(err, apperrors.ErrBrokerConfigNotFound) {
			t.Fatalf("Expected ErrBrokerConfigNotFound, got %v", err)
		}
	})

	t.Run("token round-trips through encryption", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewBrokerConfigRepository(db, testFernetKey)
		if err != nil {
			t.Fatalf("NewBrokerConfigRepository() returned unexpected error: %v", err)
		}

		expires := testutil.Day(2025, time.April, 1)
		saved, err := repo.SaveConfig(&model.BrokerConfig{
			Enabled:        true,
			Token:          "secret-bearer-token",
			TokenExpiresAt: &expires,
		})
		if err != nil {
			t.Fatalf("SaveConfig() returned unexpected error: %v", err)
		}
		if saved.ID == "" {
			t.Error("Expected save to assign an id")
		}

		// The stored column must not contain the plaintext.
		var stored string
		if err := db.QueryRow(`SELECT token_encrypted FROM broker_config`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored token: %v", err)
		}
		if stored == "" || stored == "secret-bearer-token" {
			t.Errorf("Expected an encrypted token at rest, got %q", stored)
		}

		config, err := repo.GetConfig()
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}
		if !config.Enabled || config.Token != "secret-bearer-token" {
			t.Errorf("Expected enabled config with decrypted token, got %+v", config)
		}
		if config.TokenExpiresAt == nil || !config.TokenExpiresAt.Equal(expires) {
			t.Errorf("Expected expiry %v, got %v", expires, config.TokenExpiresAt)
		}
	})

	t.Run("save replaces the single config row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewBrokerConfigRepository(db, testFernetKey)
		if err != nil {
			t.Fatalf("NewBrokerConfigRepository() returned unexpected error: %v", err)
		}

		if _, err := repo.SaveConfig(&model.BrokerConfig{Enabled: true, Token: "first"}); err != nil {
			t.Fatalf("SaveConfig() returned unexpected error: %v", err)
		}
		if _, err := repo.SaveConfig(&model.BrokerConfig{Enabled: false, Token: "second"}); err != nil {
			t.Fatalf("SaveConfig() returned unexpected error: %v", err)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM broker_config`).Scan(&count); err != nil {
			t.Fatalf("Failed to count config rows: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected a single config row, got %d", count)
		}

		config, err := repo.GetConfig()
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}
		if config.Token != "second" || config.Enabled {
			t.Errorf("Expected the latest config, got %+v", config)
		}
	})

	t.Run("empty token stays empty", func(t *testing.T) {
		repo, err := repository.NewBrokerConfigRepository(testutil.SetupTestDB(t), testFernetKey)
		if err != nil {
			t.Fatalf("NewBrokerConfigRepository() returned unexpected error: %v", err)
		}

		if _, err := repo.SaveConfig(&model.BrokerConfig{Enabled: false}); err != nil {
			t.Fatalf("SaveConfig() returned unexpected error: %v", err)
		}
		config, err := repo.GetConfig()
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}
		if config.Token != "" {
			t.Errorf("Expected empty token, got %q", config.Token)
		}
		if config.TokenExpiresAt != nil {
			t.Errorf("Expected nil expiry, got %v", config.TokenExpiresAt)
		}
	})
}
