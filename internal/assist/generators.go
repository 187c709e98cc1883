package assist

import (
	"context"

	"github.com/enabha/assist/internal/domain"
)

// WellnessGuide generates a 3-day wellness guide from already-translated
// English symptoms and renders it into language. The language comes from a
// prior analysis run; detection is never re-run here.
func (a *Analyzer) WellnessGuide(ctx context.Context, englishSymptoms, language string) (*domain.GeneratedContent, error) {
	return a.generateAndTranslate(ctx, wellnessPrompt(englishSymptoms), language)
}

// SuggestSpecialists describes 2-3 specialist types relevant to the given
// English symptoms, translated into language. The prompt forbids naming
// specific providers or hospitals.
func (a *Analyzer) SuggestSpecialists(ctx context.Context, englishSymptoms, language string) (*domain.GeneratedContent, error) {
	return a.generateAndTranslate(ctx, specialistPrompt(englishSymptoms), language)
}

// generateAndTranslate is the shared two-call shape of the auxiliary
// generators: produce English content, then translate it.
func (a *Analyzer) generateAndTranslate(ctx context.Context, prompt, language string) (*domain.GeneratedContent, error) {
	english, err := a.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:          prompt,
		MaxOutputTokens: stageMaxOutputTokens,
	})
	if err != nil {
		return nil, domain.ErrOrchestration("generate", err)
	}

	translated, err := a.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:          translatePrompt(english, language),
		MaxOutputTokens: stageMaxOutputTokens,
	})
	if err != nil {
		return nil, domain.ErrOrchestration("translate", err)
	}

	return &domain.GeneratedContent{
		English:    english,
		Translated: translated,
		Language:   language,
	}, nil
}
