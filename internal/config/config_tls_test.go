package config

import (
	"strings"
	"testing"
)

func configWithTLS(tls TLSConfig) *Config {
	return &Config{
		Server: ServerConfig{TLS: tls},
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "disabled mode skips validation",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode with cert and key files",
			tls:  TLSConfig{Mode: "server", CertFile: "server.crt", KeyFile: "server.key"},
		},
		{
			name: "server mode with cert and key content",
			tls:  TLSConfig{Mode: "server", CertContent: "CERT", KeyContent: "KEY"},
		},
		{
			name:    "invalid mode",
			tls:     TLSConfig{Mode: "tls13"},
			wantErr: "invalid TLS mode: tls13",
		},
		{
			name:    "server mode missing certificate",
			tls:     TLSConfig{Mode: "server", KeyFile: "server.key"},
			wantErr: "requires a certificate",
		},
		{
			name:    "certificate from both file and content",
			tls:     TLSConfig{Mode: "server", CertFile: "server.crt", CertContent: "CERT", KeyFile: "server.key"},
			wantErr: "certificate cannot be specified as both file and content",
		},
		{
			name:    "server mode missing key",
			tls:     TLSConfig{Mode: "server", CertFile: "server.crt"},
			wantErr: "requires a private key",
		},
		{
			name:    "key from both file and content",
			tls:     TLSConfig{Mode: "server", CertFile: "server.crt", KeyFile: "server.key", KeyContent: "KEY"},
			wantErr: "private key cannot be specified as both file and content",
		},
		{
			name: "mutual mode with CA file",
			tls:  TLSConfig{Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt"},
		},
		{
			name:    "mutual mode without CA",
			tls:     TLSConfig{Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key"},
			wantErr: "mutual TLS requires a client CA",
		},
		{
			name:    "CA from both file and content",
			tls:     TLSConfig{Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt", CAContent: "CA"},
			wantErr: "client CA cannot be specified as both file and content",
		},
		{
			name: "mutual mode with valid client auth policy",
			tls:  TLSConfig{Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt", ClientAuthPolicy: "verify"},
		},
		{
			name:    "mutual mode with invalid client auth policy",
			tls:     TLSConfig{Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt", ClientAuthPolicy: "optional"},
			wantErr: "invalid client auth policy: optional",
		},
		{
			name: "valid minimum version",
			tls:  TLSConfig{Mode: "server", CertFile: "server.crt", KeyFile: "server.key", MinVersion: "1.3"},
		},
		{
			name:    "invalid minimum version",
			tls:     TLSConfig{Mode: "server", CertFile: "server.crt", KeyFile: "server.key", MinVersion: "1.1"},
			wantErr: "invalid TLS minimum version: 1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := configWithTLS(tt.tls).ValidateTLSConfig()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateTLSConfig() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateTLSConfig() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateTLSConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
