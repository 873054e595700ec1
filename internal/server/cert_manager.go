package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"
)

// CertificateManager holds the server certificate and reloads it when
// the underlying files change.
type CertificateManager struct {
	mu        sync.RWMutex
	cert      *tls.Certificate
	tlsConfig *config.TLSConfig

	watcher  *fsnotify.Watcher
	debounce time.Duration
	reloadCh chan struct{}
	done     chan struct{}

	obs    *observability.Manager
	logger *errors.Logger
}

// NewCertificateManager loads the initial certificate and prepares the
// file watcher when auto-reload is enabled.
func NewCertificateManager(tlsCfg *config.TLSConfig, obs *observability.Manager, logger *errors.Logger) (*CertificateManager, error) {
	cm := &CertificateManager{
		tlsConfig: tlsCfg,
		debounce:  tlsCfg.AutoReload.DebounceDelay,
		reloadCh:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		obs:       obs,
		logger:    logger,
	}

	if err := cm.reload(); err != nil {
		return nil, err
	}
	return cm, nil
}

// Start begins watching the certificate files for changes. Content-based
// certificates (loaded from Vault) have no files to watch.
func (cm *CertificateManager) Start() error {
	if !cm.tlsConfig.AutoReload.Enabled || cm.tlsConfig.CertFile == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cm.watcher = watcher

	for _, file := range []string{cm.tlsConfig.CertFile, cm.tlsConfig.KeyFile, cm.tlsConfig.CAFile} {
		if file == "" {
			continue
		}
		if err := watcher.Add(file); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}

	go cm.watchLoop()
	go cm.reloadLoop()

	cm.logger.Info("Certificate auto-reload enabled",
		"cert_file", cm.tlsConfig.CertFile,
		"debounce", cm.debounce.String())
	return nil
}

func (cm *CertificateManager) watchLoop() {
	for {
		select {
		case event, ok := <-cm.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				select {
				case cm.reloadCh <- struct{}{}:
				default:
				}
			}
		case err, ok := <-cm.watcher.Errors:
			if !ok {
				return
			}
			cm.logger.Warn("Certificate watcher error", "error", err.Error())
		case <-cm.done:
			return
		}
	}
}

// reloadLoop debounces change events so a renamed-then-written cert pair
// triggers a single reload.
func (cm *CertificateManager) reloadLoop() {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-cm.reloadCh:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cm.debounce)
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			err := cm.reload()
			if cm.obs != nil {
				cm.obs.RecordCertReload(context.Background(), err == nil)
			}
			if err != nil {
				cm.logger.LogError(err, "Failed to reload TLS certificates")
			} else {
				cm.logger.Info("TLS certificates reloaded")
			}
		case <-cm.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// reload loads the certificate from files or inline content
func (cm *CertificateManager) reload() error {
	var cert tls.Certificate
	var err error

	if cm.tlsConfig.CertContent != "" {
		cert, err = tls.X509KeyPair([]byte(cm.tlsConfig.CertContent), []byte(cm.tlsConfig.KeyContent))
	} else {
		cert, err = tls.LoadX509KeyPair(cm.tlsConfig.CertFile, cm.tlsConfig.KeyFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load certificate: %w", err)
	}

	if cert.Leaf == nil && len(cert.Certificate) > 0 {
		leaf, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return fmt.Errorf("failed to parse certificate leaf: %w", err)
		}
		cert.Leaf = leaf
	}

	cm.mu.Lock()
	cm.cert = &cert
	cm.mu.Unlock()
	return nil
}

// GetServerCertificate serves the current certificate to the TLS stack
func (cm *CertificateManager) GetServerCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.cert == nil {
		return nil, fmt.Errorf("no certificate loaded")
	}
	return cm.cert, nil
}

// CheckExpiry returns the time until the current certificate expires
func (cm *CertificateManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.cert == nil || cm.cert.Leaf == nil {
		return 0, fmt.Errorf("no certificate loaded")
	}
	return time.Until(cm.cert.Leaf.NotAfter), nil
}

// ClientCAPool builds the CA pool for verifying client certificates
func (cm *CertificateManager) ClientCAPool() (*x509.CertPool, error) {
	pool := x509.NewCertPool()

	var pemData []byte
	if cm.tlsConfig.CAContent != "" {
		pemData = []byte(cm.tlsConfig.CAContent)
	} else {
		data, err := os.ReadFile(cm.tlsConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read client CA file: %w", err)
		}
		pemData = data
	}

	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("no valid certificates in client CA")
	}
	return pool, nil
}

// Stop shuts down the watcher goroutines
func (cm *CertificateManager) Stop() error {
	close(cm.done)
	if cm.watcher != nil {
		return cm.watcher.Close()
	}
	return nil
}
