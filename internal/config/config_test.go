package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:   "gemini",
			Model:      "gemini-2.0-flash",
			Timeout:    10 * time.Second,
			MaxRetries: 3,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
			RateLimit: RateLimitConfig{
				Enabled:        true,
				RequestsPerMin: 30,
				BurstCapacity:  10,
			},
		},
		App: AppConfig{
			LogLevel:    "info",
			MaxFileSize: 10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.App.LogLevel = "trace" },
			wantErr: "invalid log level: trace",
		},
		{
			name:    "unsupported AI provider",
			mutate:  func(c *Config) { c.AI.Provider = "openai" },
			wantErr: "unsupported AI provider: openai",
		},
		{
			name:    "negative max retries",
			mutate:  func(c *Config) { c.AI.MaxRetries = -1 },
			wantErr: "ai.maxRetries cannot be negative",
		},
		{
			name:    "zero AI timeout",
			mutate:  func(c *Config) { c.AI.Timeout = 0 },
			wantErr: "ai.timeout must be positive",
		},
		{
			name:    "rate limit enabled without requests per minute",
			mutate:  func(c *Config) { c.Server.RateLimit.RequestsPerMin = 0 },
			wantErr: "server.rateLimit.requestsPerMin must be positive",
		},
		{
			name:    "rate limit enabled without burst capacity",
			mutate:  func(c *Config) { c.Server.RateLimit.BurstCapacity = 0 },
			wantErr: "server.rateLimit.burstCapacity must be positive",
		},
		{
			name: "rate limit disabled skips limit checks",
			mutate: func(c *Config) {
				c.Server.RateLimit = RateLimitConfig{Enabled: false}
			},
		},
		{
			name:    "non-positive max file size",
			mutate:  func(c *Config) { c.App.MaxFileSize = 0 },
			wantErr: "app.maxFileSize must be positive",
		},
		{
			name:    "TLS validation is reachable from Validate",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "server" },
			wantErr: "requires a certificate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "resumelens",
		Password: "s3cret",
		Name:     "feedback",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=resumelens password=s3cret dbname=feedback sslmode=require"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// Run from a temp dir so a developer's local config.yaml is not picked up.
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.AI.Provider != "gemini" {
		t.Errorf("AI.Provider = %q, want %q", cfg.AI.Provider, "gemini")
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("AI.Model = %q, want %q", cfg.AI.Model, "gemini-2.0-flash")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.TLS.Mode != "disabled" {
		t.Errorf("Server.TLS.Mode = %q, want %q", cfg.Server.TLS.Mode, "disabled")
	}
	if !cfg.Server.RateLimit.Enabled || cfg.Server.RateLimit.RequestsPerMin != 30 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.Server.RateLimit)
	}
	if cfg.App.DefaultFormat != "json" {
		t.Errorf("App.DefaultFormat = %q, want %q", cfg.App.DefaultFormat, "json")
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled should default to false")
	}
	if cfg.Observability.ServiceName != "resumelens" {
		t.Errorf("Observability.ServiceName = %q, want %q", cfg.Observability.ServiceName, "resumelens")
	}
}
