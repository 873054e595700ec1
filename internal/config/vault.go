package config

import (
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig holds HashiCorp Vault configuration
type VaultConfig struct {
	Enabled   bool               `mapstructure:"enabled"`
	Address   string             `mapstructure:"address"`
	Token     string             `mapstructure:"token"`
	TokenFile string             `mapstructure:"tokenFile"`
	Namespace string             `mapstructure:"namespace"`
	Secrets   VaultSecretsConfig `mapstructure:"secrets"`
}

// VaultSecretsConfig maps secret kinds to their Vault paths
type VaultSecretsConfig struct {
	AIKey    string `mapstructure:"aiKey"`
	Database string `mapstructure:"database"`
	TLSCerts string `mapstructure:"tlsCerts"`
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *vault.Client
	config *VaultConfig
}

// NewVaultClient creates a Vault client from configuration.
// Returns (nil, nil) when Vault is disabled.
func NewVaultClient(cfg *VaultConfig) (*VaultClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("vault address is required when vault is enabled")
	}

	apiConfig := vault.DefaultConfig()
	apiConfig.Address = cfg.Address

	client, err := vault.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	token, err := resolveVaultToken(cfg)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return &VaultClient{client: client, config: cfg}, nil
}

// resolveVaultToken determines the token from config, file, or environment
func resolveVaultToken(cfg *VaultConfig) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}
	if cfg.TokenFile != "" {
		data, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if token := os.Getenv("VAULT_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no vault token provided (set vault.token, vault.tokenFile, or VAULT_TOKEN)")
}

// ReadSecret reads a KV v2 secret and returns its data map
func (vc *VaultClient) ReadSecret(path string) (map[string]interface{}, error) {
	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secret found at %s", path)
	}

	// KV v2 nests the payload under "data"
	if data, ok := secret.Data["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return secret.Data, nil
}

// fillFromVault overwrites secret-bearing fields with values from Vault.
// Vault values take precedence over file and environment values.
func (c *Config) fillFromVault() error {
	vc, err := NewVaultClient(&c.Vault)
	if err != nil {
		return err
	}
	if vc == nil {
		return nil
	}

	if path := c.Vault.Secrets.AIKey; path != "" {
		data, err := vc.ReadSecret(path)
		if err != nil {
			return err
		}
		if key, ok := data["apiKey"].(string); ok && key != "" {
			c.AI.APIKey = key
		}
	}

	if c.Database.Enabled && c.Vault.Secrets.Database != "" {
		data, err := vc.ReadSecret(c.Vault.Secrets.Database)
		if err != nil {
			return err
		}
		if pw, ok := data["password"].(string); ok && pw != "" {
			c.Database.Password = pw
		}
		if user, ok := data["user"].(string); ok && user != "" {
			c.Database.User = user
		}
	}

	if c.Server.TLS.Mode != "disabled" && c.Vault.Secrets.TLSCerts != "" {
		data, err := vc.ReadSecret(c.Vault.Secrets.TLSCerts)
		if err != nil {
			return err
		}
		if cert, ok := data["cert"].(string); ok && cert != "" {
			c.Server.TLS.CertContent = cert
			c.Server.TLS.CertFile = ""
		}
		if key, ok := data["key"].(string); ok && key != "" {
			c.Server.TLS.KeyContent = key
			c.Server.TLS.KeyFile = ""
		}
		if ca, ok := data["ca"].(string); ok && ca != "" {
			c.Server.TLS.CAContent = ca
			c.Server.TLS.CAFile = ""
		}
	}

	return nil
}
