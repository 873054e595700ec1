package config

import "fmt"

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := &c.Server.TLS

	switch tls.Mode {
	case "disabled":
		return nil
	case "server", "mutual":
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", tls.Mode)
	}

	// Certificate and key must come from exactly one source.
	hasCertFile := tls.CertFile != ""
	hasCertContent := tls.CertContent != ""
	if !hasCertFile && !hasCertContent {
		return fmt.Errorf("TLS mode '%s' requires a certificate (certFile or certContent)", tls.Mode)
	}
	if hasCertFile && hasCertContent {
		return fmt.Errorf("certificate cannot be specified as both file and content")
	}

	hasKeyFile := tls.KeyFile != ""
	hasKeyContent := tls.KeyContent != ""
	if !hasKeyFile && !hasKeyContent {
		return fmt.Errorf("TLS mode '%s' requires a private key (keyFile or keyContent)", tls.Mode)
	}
	if hasKeyFile && hasKeyContent {
		return fmt.Errorf("private key cannot be specified as both file and content")
	}

	if tls.Mode == "mutual" {
		hasCAFile := tls.CAFile != ""
		hasCAContent := tls.CAContent != ""
		if !hasCAFile && !hasCAContent {
			return fmt.Errorf("mutual TLS requires a client CA (caFile or caContent)")
		}
		if hasCAFile && hasCAContent {
			return fmt.Errorf("client CA cannot be specified as both file and content")
		}

		switch tls.ClientAuthPolicy {
		case "", "require", "request", "verify":
		default:
			return fmt.Errorf("invalid client auth policy: %s (must be 'require', 'request', or 'verify')", tls.ClientAuthPolicy)
		}
	}

	switch tls.MinVersion {
	case "", "1.2", "1.3":
	default:
		return fmt.Errorf("invalid TLS minimum version: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}

	return nil
}
