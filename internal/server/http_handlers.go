package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"resumelens/internal/errors"
	"resumelens/internal/store"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// extractResumeHandler accepts a resume upload and returns its
// structured fields.
func (s *Server) extractResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.extract_resume")
	if !ok {
		return
	}
	defer span.End()

	doc, err := s.readUploadedDocument(r, "resume")
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.String("document.format", string(doc.Format)),
		attribute.Int("document.bytes", len(doc.Content)),
	)

	fields, err := s.Pipeline.ExtractResume(ctx, doc)
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, err)
		return
	}

	writeJSONResponse(w, fields)
}

// matchResumeHandler reviews a resume, against a job description when
// one is supplied.
func (s *Server) matchResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.match_resume")
	if !ok {
		return
	}
	defer span.End()

	doc, err := s.readUploadedDocument(r, "resume")
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	span.SetAttributes(
		attribute.String("document.format", string(doc.Format)),
		attribute.Bool("request.has_job_description", jobDescription != ""),
	)

	if jobDescription != "" {
		review, err := s.Pipeline.MatchResume(ctx, doc, jobDescription)
		if err != nil {
			span.RecordError(err)
			s.writeAppError(w, err)
			return
		}
		span.SetAttributes(attribute.Int("match.score", review.MatchScore))
		writeJSONResponse(w, review)
		return
	}

	review, err := s.Pipeline.ReviewResume(ctx, doc)
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, err)
		return
	}
	span.SetAttributes(attribute.Int("ats.score", review.ATSScore))
	writeJSONResponse(w, review)
}

// atsPreviewHandler scores resume fields without touching the LLM
func (s *Server) atsPreviewHandler(w http.ResponseWriter, r *http.Request) {
	_, span, ok := s.startPostSpan(w, r, "api.ats_preview")
	if !ok {
		return
	}
	defer span.End()

	var req ATSPreviewRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	breakdown := s.Pipeline.ATSPreview(types.ResumeFields{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
	})

	span.SetAttributes(attribute.Float64("ats.score", breakdown.Composite))
	writeJSONResponse(w, map[string]any{
		"ats_score": breakdown.Composite,
		"breakdown": breakdown,
	})
}

// generateResumeHandler renders a resume document from fields
func (s *Server) generateResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.generate_resume")
	if !ok {
		return
	}
	defer span.End()

	var req GenerateResumeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	format := types.DocumentFormat(req.Format)
	if req.Format == "" {
		format = types.FormatPDF
	}
	span.SetAttributes(
		attribute.String("render.template", req.Template),
		attribute.String("render.format", string(format)),
	)

	started := time.Now()
	data, contentType, err := s.Renderer.Render(types.RenderRequest{
		Fields: types.ResumeFields{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Education:  req.Education,
			Experience: req.Experience,
			Skills:     req.Skills,
		},
		Template: req.Template,
		Format:   format,
	})
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, err)
		return
	}

	if s.Obs != nil {
		s.Obs.RecordOperation(ctx, "generate_resume", true, time.Since(started))
	}

	filename := "resume." + string(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if _, err := w.Write(data); err != nil {
		s.Logger.LogError(err, "Failed to write rendered resume")
	}
}

// suggestContentHandler generates starter content for a role
func (s *Server) suggestContentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.suggest_content")
	if !ok {
		return
	}
	defer span.End()

	var req SuggestContentRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		writeErrorResponse(w, "Missing job title", "jobTitle field is required", http.StatusBadRequest)
		return
	}

	content := s.Pipeline.SuggestContent(ctx, req.JobTitle, req.YearsExperience)
	writeJSONResponse(w, content)
}

// enhanceSectionHandler rewrites a single resume section
func (s *Server) enhanceSectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.enhance_section")
	if !ok {
		return
	}
	defer span.End()

	var req EnhanceSectionRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Section) == "" || strings.TrimSpace(req.Content) == "" {
		writeErrorResponse(w, "Missing fields", "section and content fields are required", http.StatusBadRequest)
		return
	}

	enhanced := s.Pipeline.EnhanceSection(ctx, req.Section, req.Content, req.JobTitle)
	writeJSONResponse(w, map[string]string{"enhanced": enhanced})
}

// resumeRoastHandler returns a comedic critique of an uploaded resume
func (s *Server) resumeRoastHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span, ok := s.startPostSpan(w, r, "api.resume_roast")
	if !ok {
		return
	}
	defer span.End()

	doc, err := s.readUploadedDocument(r, "file")
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
		return
	}

	level := r.FormValue("roast_level")
	if level == "" {
		level = "spicy"
	}
	span.SetAttributes(attribute.String("roast.level", level))

	roast := s.Pipeline.Roast(ctx, doc, level)
	writeJSONResponse(w, map[string]string{"roast": roast})
}

// feedbackHandler stores user feedback (POST) and lists recent notes (GET)
func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	if s.Feedback == nil {
		writeErrorResponse(w, "Feedback store disabled", "database is not configured", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req FeedbackRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeErrorResponse(w, "Invalid feedback", "message field is required", http.StatusBadRequest)
			return
		}

		note := &store.FeedbackNote{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Message: strings.TrimSpace(req.Message),
		}
		if err := s.Feedback.Create(note); err != nil {
			s.writeAppError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(note); err != nil {
			s.Logger.LogError(err, "Failed to encode feedback response")
		}

	case http.MethodGet:
		notes, err := s.Feedback.Recent(50)
		if err != nil {
			s.writeAppError(w, err)
			return
		}
		writeJSONResponse(w, notes)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// healthHandler reports service, AI model, and certificate health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
	}

	healthy := true

	ctx, cancel := context.WithTimeout(r.Context(), s.AppConfig.Observability.HealthCheck.Timeout)
	defer cancel()

	if s.Provider != nil {
		modelInfo := s.Provider.GetModelInfo(ctx)
		response["ai_model"] = modelInfo
		if !modelInfo.Available {
			healthy = false
		}
	}

	if certStatus := s.checkCertificateHealth(); certStatus != nil {
		response["certificates"] = certStatus
		if h, ok := certStatus["healthy"].(bool); ok && !h {
			healthy = false
		}
	}

	response["database"] = map[string]any{
		"enabled": s.Feedback != nil,
	}

	if !healthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	writeJSONResponse(w, response)
}

// checkCertificateHealth reports TLS certificate expiry status
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}

	certStatus := make(map[string]any)

	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())

	switch {
	case timeToExpiry <= 0:
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
	case timeToExpiry <= 24*time.Hour:
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
	case timeToExpiry <= 7*24*time.Hour:
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
	default:
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
	}

	certStatus["auto_reload"] = s.TLSConfig.AutoReload.Enabled
	return certStatus
}

// statsHandler provides server statistics including rate limiting and
// feedback aggregates
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"templates": s.Renderer.TemplateNames(),
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.Feedback != nil {
		count, err := s.Feedback.Count()
		if err != nil {
			s.Logger.LogError(err, "Failed to count feedback")
		} else {
			response["feedback"] = map[string]any{"count": count}
		}
	}

	writeJSONResponse(w, response)
}

// startPostSpan enforces the POST method and opens a tracing span
func (s *Server) startPostSpan(w http.ResponseWriter, r *http.Request, name string) (context.Context, oteltrace.Span, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, nil, false
	}
	tracer := s.Obs.Tracer("resumelens.api")
	ctx, span := tracer.Start(r.Context(), name)
	return ctx, span, true
}

// readUploadedDocument reads the named multipart file field and infers
// the document format from the filename extension.
func (s *Server) readUploadedDocument(r *http.Request, field string) (types.Document, error) {
	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		return types.Document{}, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return types.Document{}, fmt.Errorf("missing file field %q: %w", field, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err.Error())
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	format := types.FormatPDF
	if strings.EqualFold(filepath.Ext(header.Filename), ".docx") {
		format = types.FormatDOCX
	}

	return types.Document{Content: content, Format: format}, nil
}

// writeAppError maps application errors onto HTTP status codes
func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		writeErrorResponse(w, "Internal error", err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.ErrCodeTemplateNotFound,
		errors.ErrCodeUnsupportedFormat,
		errors.ErrCodeExtractionFailed,
		errors.ErrCodeInvalidRequest,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeAIRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeAITimeout:
		status = http.StatusGatewayTimeout
	}

	writeErrorResponse(w, appErr.Message, appErr.Code, status)
}

// parseJSONRequest parses a JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeJSONResponse writes a JSON body with the content type set
func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, errMsg, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: errMsg, Message: message}); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
