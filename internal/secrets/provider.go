// Package secrets resolves the credentials the service needs at startup:
// database access, the JWT signing key, the admin password hash, the blob
// storage connection string and the legacy workshop-software login. In
// development everything comes from environment variables; deployed
// environments read from Azure Key Vault.
package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Provider reads secrets from Azure Key Vault. Environment variables take
// precedence when set, so a deployment can pin individual values without
// touching the vault.
type Provider struct {
	vault  *VaultClient
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider.
type ProviderConfig struct {
	VaultName    string
	Environment  string // "development", "staging", "production"
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider creates a vault-backed secrets provider.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("key vault name is required")
	}

	vault, err := NewVaultClient(&VaultConfig{
		VaultName:    cfg.VaultName,
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vault client: %w", err)
	}

	logger.Info("Secrets provider initialized",
		zap.String("key_vault_name", cfg.VaultName),
		zap.String("environment", cfg.Environment),
	)

	return &Provider{vault: vault, logger: logger}, nil
}

// GetSecret retrieves a secret from the vault by its Key Vault name
// (e.g. "LEGACY-PASSWORD").
func (p *Provider) GetSecret(ctx context.Context, secretName string) (string, error) {
	if p.vault == nil {
		return "", fmt.Errorf("vault client not initialized")
	}
	return p.vault.GetSecret(ctx, secretName)
}

// GetSecretOrEnv returns the environment variable when set, otherwise the
// vault secret.
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		p.logger.Debug("Using environment variable override",
			zap.String("env_name", envName),
		)
		return envValue, nil
	}
	return p.GetSecret(ctx, secretName)
}

// IsVaultEnabled reports whether the provider is backed by a vault client.
func (p *Provider) IsVaultEnabled() bool {
	return p.vault != nil
}
