// Package text provides string shaping helpers for model output.
package text

import "strings"

// Ellipsis marks a hard cut where no natural boundary was available.
const Ellipsis = "..."

// DefaultBudget is the character budget applied to generated text before it
// leaves the client.
const DefaultBudget = 1000

// Truncate caps s at budget characters (runes), preferring to end on a
// sentence boundary within the last 20% of the budget, then on a word
// boundary within the last 10%, and finally falling back to a hard cut with
// an ellipsis marker. The result never exceeds the budget, so Truncate is
// idempotent for a fixed budget.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}

	cut := runes[:budget]

	// Sentence boundary within the last 20% of the budget.
	sentenceFloor := budget - budget/5
	for i := budget - 1; i >= sentenceFloor; i-- {
		if isSentenceEnd(cut[i]) {
			return string(cut[:i+1])
		}
	}

	// Word boundary within the last 10%. No ellipsis here: the result ends
	// on a whole word and must stay within the budget.
	wordFloor := budget - budget/10
	for i := budget - 1; i >= wordFloor; i-- {
		if cut[i] == ' ' {
			return strings.TrimRight(string(cut[:i]), " ")
		}
	}

	// Hard cut.
	if budget <= len(Ellipsis) {
		return string(cut[:budget])
	}
	return string(cut[:budget-len(Ellipsis)]) + Ellipsis
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
