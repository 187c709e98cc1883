package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/enabha/assist/internal/domain"
)

// scriptedGenerator returns canned responses in order and records every
// request it sees.
type scriptedGenerator struct {
	responses []string
	errs      []error
	requests  []domain.GenerateRequest
}

func (g *scriptedGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	i := len(g.requests)
	g.requests = append(g.requests, req)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i >= len(g.responses) {
		return "", errors.New("scripted generator exhausted")
	}
	return g.responses[i], nil
}

func TestAnalyze_EndToEnd(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{
			`{"language":"Hindi","translation":"I have a headache"}`,
			"**Disclaimer...** Possible causes include...",
			"सिरदर्द के संभावित कारण...",
		},
	}
	a := NewAnalyzer(gen)

	got, err := a.Analyze(context.Background(), "मुझे सिरदर्द है")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got.OriginalText != "मुझे सिरदर्द है" {
		t.Errorf("OriginalText = %q", got.OriginalText)
	}
	if got.DetectedLanguage != "Hindi" {
		t.Errorf("DetectedLanguage = %q, want Hindi", got.DetectedLanguage)
	}
	if got.TranslatedText != "I have a headache" {
		t.Errorf("TranslatedText = %q", got.TranslatedText)
	}
	if got.Analysis != "**Disclaimer...** Possible causes include..." {
		t.Errorf("Analysis = %q", got.Analysis)
	}
	if got.TranslatedAnalysis != "सिरदर्द के संभावित कारण..." {
		t.Errorf("TranslatedAnalysis = %q, want third scripted response verbatim", got.TranslatedAnalysis)
	}
	if len(gen.requests) != 3 {
		t.Errorf("generator invoked %d times, want 3", len(gen.requests))
	}
}

func TestAnalyze_SequentialDependency(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{
			`{"language":"Hindi","translation":"I have a headache"}`,
			"analysis output",
			"translated output",
		},
	}
	a := NewAnalyzer(gen)

	if _, err := a.Analyze(context.Background(), "मुझे सिरदर्द है"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Stage 2's prompt carries stage 1's translation.
	if gen.requests[1].Prompt != "I have a headache" {
		t.Errorf("stage 2 prompt = %q, want stage 1 translation", gen.requests[1].Prompt)
	}
	if gen.requests[1].SystemInstruction == "" {
		t.Error("stage 2 missing safety system instruction")
	}
	if !strings.Contains(gen.requests[1].SystemInstruction, "Disclaimer: this is not medical advice; consult a healthcare professional") {
		t.Error("system instruction missing the fixed disclaimer wording")
	}
	if gen.requests[1].MaxOutputTokens != 200 {
		t.Errorf("stage 2 maxOutputTokens = %d, want 200", gen.requests[1].MaxOutputTokens)
	}

	// Stage 3's prompt carries stage 2's output and stage 1's language.
	if !strings.Contains(gen.requests[2].Prompt, "analysis output") {
		t.Errorf("stage 3 prompt %q missing stage 2 output", gen.requests[2].Prompt)
	}
	if !strings.Contains(gen.requests[2].Prompt, "Hindi") {
		t.Errorf("stage 3 prompt %q missing detected language", gen.requests[2].Prompt)
	}
}

func TestAnalyze_DetectionFailureAborts(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{"no json in this reply"},
	}
	a := NewAnalyzer(gen)

	_, err := a.Analyze(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error when detection yields no JSON")
	}
	if !domain.IsType(err, domain.ErrorTypeOrchestration) {
		t.Errorf("error = %v, want orchestration AssistError", err)
	}
	// The stage error keeps its extraction identity under the wrapper.
	var ae *domain.AssistError
	if !errors.As(err, &ae) || !domain.IsType(ae.Err, domain.ErrorTypeExtraction) {
		t.Errorf("cause = %v, want extraction AssistError", err)
	}
	// No English-only fallback: the later stages never run.
	if len(gen.requests) != 1 {
		t.Errorf("generator invoked %d times after detection failure, want 1", len(gen.requests))
	}
}

func TestAnalyze_StageFailureIsAllOrNothing(t *testing.T) {
	terminal := domain.ErrGeneration(errors.New("status 503"))
	gen := &scriptedGenerator{
		responses: []string{`{"language":"Hindi","translation":"I have a headache"}`, ""},
		errs:      []error{nil, terminal},
	}
	a := NewAnalyzer(gen)

	res, err := a.Analyze(context.Background(), "मुझे सिरदर्द है")
	if err == nil {
		t.Fatal("expected error when analysis stage fails")
	}
	if res != nil {
		t.Error("expected no partial result")
	}
	if !errors.Is(err, terminal) {
		t.Errorf("error chain %v does not preserve the stage error", err)
	}
}
