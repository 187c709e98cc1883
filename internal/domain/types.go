// Package domain provides the canonical types shared by the assist service.
package domain

// GenerateRequest describes a single outbound call to the remote text
// generation endpoint. Requests are constructed per call and never persisted.
type GenerateRequest struct {
	// Prompt is the user-facing content of the request.
	Prompt string

	// SystemInstruction, when non-empty, is sent as the system instruction
	// block alongside the prompt.
	SystemInstruction string

	// MaxOutputTokens caps the remote model's output. Zero means the client
	// default (250). The remote endpoint treats this as advisory, so the
	// client still truncates responses locally.
	MaxOutputTokens int
}

// LanguageDetection is the parsed result of the detect-and-translate step.
// Language is a natural-language label ("Hindi", "Punjabi"), not an ISO code,
// because downstream prompts embed it verbatim.
type LanguageDetection struct {
	Language    string `json:"language"`
	Translation string `json:"translation"`
}

// SymptomAnalysis is the assembled output of one orchestration run. It is
// immutable after construction and owned by the caller.
type SymptomAnalysis struct {
	// OriginalText is the symptom description exactly as the patient wrote it.
	OriginalText string `json:"original_text"`

	// TranslatedText is the English rendering of OriginalText.
	TranslatedText string `json:"translated_text"`

	// DetectedLanguage is the language label from the detection step.
	DetectedLanguage string `json:"detected_language"`

	// Analysis is the English assessment produced under the safety system
	// instruction.
	Analysis string `json:"analysis"`

	// TranslatedAnalysis is Analysis rendered back into DetectedLanguage.
	TranslatedAnalysis string `json:"translated_analysis"`
}

// GeneratedContent is the output of an auxiliary generator (wellness guide,
// specialist suggestions): English content plus its translation into the
// language previously detected for the patient.
type GeneratedContent struct {
	English    string `json:"english"`
	Translated string `json:"translated"`
	Language   string `json:"language"`
}
