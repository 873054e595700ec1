package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
)

// configureTLS sets up TLS on the HTTP server based on the configured mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	switch s.TLSConfig.Mode {
	case "disabled":
		return nil
	case "server", "mutual":
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", s.TLSConfig.Mode)
	}

	cm, err := NewCertificateManager(&s.TLSConfig, s.Obs, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}
	if s.TLSConfig.AutoReload.Enabled {
		if err := cm.Start(); err != nil {
			return fmt.Errorf("failed to start certificate manager: %w", err)
		}
	}
	s.CertificateManager = cm

	tlsConfig := &tls.Config{
		MinVersion:     tls.VersionTLS12,
		GetCertificate: cm.GetServerCertificate,
	}

	if s.TLSConfig.MinVersion == "1.3" {
		tlsConfig.MinVersion = tls.VersionTLS13
	}

	if s.TLSConfig.Mode == "mutual" {
		if err := s.configureClientAuth(tlsConfig, cm); err != nil {
			return err
		}
	}

	httpServer.TLSConfig = tlsConfig
	return nil
}

// configureClientAuth sets the client CA pool and auth policy for mTLS
func (s *Server) configureClientAuth(tlsConfig *tls.Config, cm *CertificateManager) error {
	pool, err := cm.ClientCAPool()
	if err != nil {
		return err
	}
	tlsConfig.ClientCAs = pool

	switch s.TLSConfig.ClientAuthPolicy {
	case "request":
		tlsConfig.ClientAuth = tls.RequestClientCert
	case "verify":
		tlsConfig.ClientAuth = tls.VerifyClientCertIfGiven
	default:
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return nil
}
