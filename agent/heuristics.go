package agent

import "strings"

// defaultIntentPhrases are endings that announce work instead of
// delivering it. A final answer ending in one of these means the model
// stopped at stated intent and still owes the actual content.
var defaultIntentPhrases = []string{
	"i'll write it up",
	"i'll put together a report",
	"i'll take a look",
	"i'll look into it",
	"i'll look into that",
	"i'll check",
	"i'll review it",
	"i'll analyze it",
	"i'll analyze that",
	"i'll summarize",
	"i'll investigate",
	"i'll proceed",
	"i'll get started",
	"i'll start now",
	"let me analyze that",
	"let me take a look",
	"let me check",
	"let me look into it",
	"let me get started",
}

// Heuristics decides when a final answer needs a follow-up detailed
// report. Threshold and phrase list are configuration, not invariants.
type Heuristics struct {
	ShortAnswerLimit int
	IntentPhrases    []string
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		ShortAnswerLimit: 500,
		IntentPhrases:    defaultIntentPhrases,
	}
}

// NeedsDetailedReport reports whether the exchange should issue one extra
// non-tool request for a full report: either tools were used but the final
// text is suspiciously short, or the text only announces intent.
func (h Heuristics) NeedsDetailedReport(finalText string, toolCalls int) bool {
	if toolCalls >= 1 && len(finalText) < h.ShortAnswerLimit {
		return true
	}
	return h.IntentOnly(finalText)
}

// IntentOnly reports whether the text carries no real content: it is
// near-empty, or it ends with an intent-only phrase (optionally followed
// by closing punctuation).
func (h Heuristics) IntentOnly(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return true
	}

	trimmed = strings.ToLower(strings.TrimRight(trimmed, ".!"))
	for _, phrase := range h.IntentPhrases {
		if strings.HasSuffix(trimmed, phrase) {
			return true
		}
	}
	return false
}
