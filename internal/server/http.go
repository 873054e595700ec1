package server

import (
	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/pipeline"
	"resumelens/internal/render"
	"resumelens/internal/store"
)

// Request bodies for the JSON endpoints
type ATSPreviewRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type GenerateResumeRequest struct {
	Template   string `json:"template"`
	Format     string `json:"format"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type SuggestContentRequest struct {
	JobTitle        string `json:"jobTitle"`
	YearsExperience int    `json:"yearsExperience"`
}

type EnhanceSectionRequest struct {
	Section  string `json:"section"`
	Content  string `json:"content"`
	JobTitle string `json:"jobTitle"`
}

type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds the HTTP server configuration and its collaborators
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config
	TLSConfig config.TLSConfig

	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	Pipeline *pipeline.Pipeline
	Renderer *render.Registry
	Provider ai.Provider
	Feedback store.FeedbackRepository

	Obs    *observability.Manager
	Logger *errors.Logger
}

// Dependencies bundles the collaborators a Server needs.
type Dependencies struct {
	Pipeline *pipeline.Pipeline
	Renderer *render.Registry
	Provider ai.Provider
	Feedback store.FeedbackRepository
	Obs      *observability.Manager
}

// NewServer creates a Server from configuration and its dependencies
func NewServer(cfg *config.Config, version string, deps Dependencies, logger *errors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.Server.RateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			cfg.Server.RateLimit.RequestsPerMin,
			cfg.Server.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        version,
		AppConfig:      cfg,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        apiKeyMap,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
		RateLimiter:    rateLimiter,
		Pipeline:       deps.Pipeline,
		Renderer:       deps.Renderer,
		Provider:       deps.Provider,
		Feedback:       deps.Feedback,
		Obs:            deps.Obs,
		Logger:         logger,
	}
}
