package assist

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/enabha/assist/internal/domain"
)

// extraction is the internal two-variant outcome of parsing a model reply:
// either a detection or a reason it could not be produced. The public
// boundary converts the failed variant into a domain.AssistError.
type extraction struct {
	detection domain.LanguageDetection
	ok        bool
	reason    string
}

// DetectAndTranslate asks the generator to identify the language of input
// and translate it to English, then parses the JSON object out of the
// possibly noisy reply. Retries already happened inside the generator call;
// a malformed reply is not reattempted here.
func (a *Analyzer) DetectAndTranslate(ctx context.Context, input string) (domain.LanguageDetection, error) {
	raw, err := a.gen.Generate(ctx, domain.GenerateRequest{Prompt: detectPrompt(input)})
	if err != nil {
		return domain.LanguageDetection{}, err
	}

	ex := extractDetection(raw)
	if !ex.ok {
		return domain.LanguageDetection{}, domain.ErrExtraction(ex.reason)
	}
	return ex.detection, nil
}

// extractDetection locates a JSON object inside raw and validates it. The
// model is instructed to reply with JSON only but is not trusted to: replies
// like "Sure! Here you go: {...} Hope that helps." must still parse.
func extractDetection(raw string) extraction {
	span, ok := jsonObjectSpan(raw)
	if !ok {
		return extraction{reason: "no JSON object found in model reply"}
	}

	var det domain.LanguageDetection
	if err := json.Unmarshal([]byte(span), &det); err != nil {
		return extraction{reason: "model reply contained malformed JSON: " + err.Error()}
	}
	if det.Language == "" || det.Translation == "" {
		return extraction{reason: "model reply JSON missing language or translation"}
	}
	return extraction{detection: det, ok: true}
}

// jsonObjectSpan returns the first balanced {...} span in s. When the
// balanced scan finds nothing (for example an unterminated object), it falls
// back to the widest span from the first '{' to the last '}'.
func jsonObjectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(s, '}')
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
