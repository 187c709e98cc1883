// Package assist implements the AI symptom checker pipeline: language
// detection and translation, a safety-constrained symptom analysis, and the
// auxiliary wellness and specialist generators. Every unit is stateless and
// call-scoped; concurrent runs share nothing but the HTTP client.
package assist

import (
	"context"
	"log/slog"

	"github.com/enabha/assist/internal/domain"
)

// Generator issues a single constrained call to the remote text generation
// endpoint. The concrete implementation (internal/api/genai) owns retries
// and truncation; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (string, error)
}

// AnalyzerOption configures the analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger for per-stage diagnostics.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// Analyzer orchestrates the symptom analysis pipeline.
type Analyzer struct {
	gen    Generator
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer over the given generator.
func NewAnalyzer(gen Generator, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		gen:    gen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the three-stage pipeline over a raw symptom description:
//
//  1. detect the input language and translate to English,
//  2. analyze the English text under the fixed safety instruction,
//  3. translate the analysis back into the detected language.
//
// Stages run strictly in order; each prompt depends on the previous stage's
// output. The contract is all-or-nothing: if any stage fails there is no
// English-only fallback, the caller gets the stage error.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) (*domain.SymptomAnalysis, error) {
	det, err := a.DetectAndTranslate(ctx, rawText)
	if err != nil {
		a.logger.Warn("symptom analysis failed", slog.String("stage", "detect"), slog.String("error", err.Error()))
		return nil, domain.ErrOrchestration("detect", err)
	}

	a.logger.Info("symptoms translated",
		slog.String("language", det.Language),
	)

	analysis, err := a.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:            det.Translation,
		SystemInstruction: analysisSystemInstruction,
		MaxOutputTokens:   stageMaxOutputTokens,
	})
	if err != nil {
		a.logger.Warn("symptom analysis failed", slog.String("stage", "analyze"), slog.String("error", err.Error()))
		return nil, domain.ErrOrchestration("analyze", err)
	}

	translated, err := a.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:          translatePrompt(analysis, det.Language),
		MaxOutputTokens: stageMaxOutputTokens,
	})
	if err != nil {
		a.logger.Warn("symptom analysis failed", slog.String("stage", "translate"), slog.String("error", err.Error()))
		return nil, domain.ErrOrchestration("translate", err)
	}

	return &domain.SymptomAnalysis{
		OriginalText:       rawText,
		TranslatedText:     det.Translation,
		DetectedLanguage:   det.Language,
		Analysis:           analysis,
		TranslatedAnalysis: translated,
	}, nil
}
