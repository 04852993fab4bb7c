package query

import "strings"

// Intent labels a query as either small talk or a legal question.
type Intent string

const (
	IntentSimple Intent = "simple"
	IntentLegal  Intent = "legal"
)

var simplePhrases = []string{
	"hello", "hi", "hey", "namaste",
	"good morning", "good evening",
	"thanks", "thank you",
	"who are you", "what can you do", "help",
}

var legalKeywords = []string{
	"section", "act", "law", "legal", "court",
	"ipc", "bns", "crpc",
	"punishment", "bail", "offence", "offense",
	"rights", "petition", "judgment",
	"divorce", "property", "contract",
}

// Classify routes a query by keyword lookup. Simple phrases win over legal
// keywords, and anything unrecognized is treated as legal so it still reaches
// retrieval.
func Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, p := range simplePhrases {
		if q == p || strings.HasPrefix(q, p+" ") || strings.HasPrefix(q, p+",") || strings.HasPrefix(q, p+"!") {
			return IntentSimple
		}
	}

	for _, kw := range legalKeywords {
		if strings.Contains(q, kw) {
			return IntentLegal
		}
	}

	return IntentLegal
}
