// Package genai provides the HTTP client for the remote text generation
// endpoint. The wire shapes here mirror the vendor's generateContent API and
// are used only by this package.
package genai

// GenerateContentRequest is the request body for a generateContent call.
type GenerateContentRequest struct {
	Contents          []Content          `json:"contents"`
	GenerationConfig  GenerationConfig   `json:"generationConfig"`
	SystemInstruction *SystemInstruction `json:"systemInstruction,omitempty"`
}

// Content is a single content entry in the request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a single text part.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig carries the sampling parameters for a call. Temperature,
// TopP and TopK are fixed service-wide; only MaxOutputTokens varies per call.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// SystemInstruction is the optional system instruction block.
type SystemInstruction struct {
	Parts []Part `json:"parts"`
}

// GenerateContentResponse is the expected response body.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a single generated candidate.
type Candidate struct {
	Content CandidateContent `json:"content"`
}

// CandidateContent holds the generated parts of a candidate.
type CandidateContent struct {
	Parts []Part `json:"parts"`
}

// Text returns the first candidate's first part text, or "" when the
// response does not carry one. An empty result is treated as a failed
// attempt by the client even on a 2xx status.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
