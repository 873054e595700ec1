package cli

import (
	"context"
	"fmt"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/extract"
	"resumelens/internal/observability"
	"resumelens/internal/pipeline"
	"resumelens/internal/render"
	"resumelens/internal/server"
	"resumelens/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume analysis and generation",
	Long: `Start an HTTP server that provides REST API endpoints for resume
extraction, scoring, matching, generation, and feedback.

Available endpoints:
- POST /extract-resume: Extract structured fields from an uploaded resume
- POST /match-resume: Review a resume, optionally against a job description
- POST /ats-preview: Score structured fields against ATS heuristics
- POST /generate-resume: Render a PDF or DOCX resume from fields
- POST /suggest-content: Generate starter content for a role
- POST /enhance-section: Rewrite a single resume section
- POST /resume-roast: Get a comedic critique of a resume
- POST /feedback: Record user feedback on an operation
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	obs, err := observability.NewManager(cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Observability shutdown failed", "error", err.Error())
		}
	}()

	provider, err := ai.NewProvider(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	var ocr extract.PageOCR
	if gemini, ok := provider.(*ai.GeminiProvider); ok {
		ocr = ai.NewGeminiOCR(gemini)
	}
	extractor := extract.NewExtractor(ocr, logger)

	var feedback store.FeedbackRepository
	if cfg.Database.Enabled {
		db, err := store.InitDatabase(&cfg.Database, logger, cfg.App.LogLevel == "debug")
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		feedback = store.NewFeedbackRepository(db)
	}

	deps := server.Dependencies{
		Pipeline: pipeline.New(extractor, provider, obs, logger),
		Renderer: render.NewRegistry(logger),
		Provider: provider,
		Feedback: feedback,
		Obs:      obs,
	}

	return server.NewServer(cfg, Version, deps, logger).Start()
}
