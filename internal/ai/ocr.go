package ai

import (
	"context"
	"strings"

	"resumelens/internal/config"
	"resumelens/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const ocrPrompt = "Transcribe all text visible in this document page. " +
	"Return the plain text only, preserving line breaks. " +
	"If the page contains no text, return an empty response."

// GeminiOCR recognizes text in single-page PDF documents using a
// vision-capable Gemini model. It backs the extraction fallback for
// pages where the embedded text layer is missing or empty.
type GeminiOCR struct {
	client  *genai.Client
	config  *config.AIConfig
	breaker *AICircuitBreaker
	logger  *errors.Logger
}

// NewGeminiOCR creates an OCR recognizer sharing the provider's client
func NewGeminiOCR(provider *GeminiProvider) *GeminiOCR {
	return &GeminiOCR{
		client:  provider.client,
		config:  provider.config,
		breaker: NewAICircuitBreaker("ocr", &provider.config.CircuitBreaker, provider.logger),
		logger:  provider.logger,
	}
}

// Recognize extracts text from a single-page PDF document
func (o *GeminiOCR) Recognize(ctx context.Context, pagePDF []byte) (string, error) {
	tracer := otel.Tracer("resumelens.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.ocr_page")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.model", o.config.OCRModel),
		attribute.Int("input.page_bytes", len(pagePDF)),
	)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(pagePDF, "application/pdf"),
			genai.NewPartFromText(ocrPrompt),
		}, genai.RoleUser),
	}

	callCtx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	result, err := o.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return o.client.Models.GenerateContent(callCtx, o.config.OCRModel, contents, &genai.GenerateContentConfig{})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", classifyError("ocr_page", err)
	}

	text := strings.TrimSpace(result.Text())
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.length", len(text)),
	)
	return text, nil
}
