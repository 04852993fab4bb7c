package query

import (
	"regexp"
	"strings"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

const (
	reformulateMaxChars  = 300
	reformulateHistory   = 4
	standaloneWordCount  = 10
	followUpMaxWords     = 5
	contextSnippetMaxLen = 50
)

var followUpTokens = []string{
	"it", "this", "that", "they", "what about", "how about", "and",
}

var topicPattern = regexp.MustCompile(`(?i)(bns|ipc)\s+section\s+\d+`)

// Reformulate rewrites a follow-up query into a standalone one using recent
// session history. Queries that already stand on their own pass through
// unchanged.
func Reformulate(query string, history []entity.Message) string {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) > reformulateMaxChars || len(history) == 0 {
		return query
	}

	recent := history
	if len(recent) > reformulateHistory {
		recent = recent[len(recent)-reformulateHistory:]
	}

	words := strings.Fields(trimmed)
	if len(words) > standaloneWordCount {
		return query
	}

	lower := strings.ToLower(trimmed)
	followUp := false
	for _, tok := range followUpTokens {
		if lower == tok || strings.HasPrefix(lower, tok+" ") || strings.Contains(lower, " "+tok+" ") || strings.HasSuffix(lower, " "+tok) {
			followUp = true
			break
		}
	}
	if !followUp && len(words) > followUpMaxWords {
		return query
	}

	// The topic comes from the most recent assistant message (its answer
	// names the statute under discussion); the user-message snippet is
	// only the fallback.
	var lastUser, topic string
	for i := len(recent) - 1; i >= 0; i-- {
		switch recent[i].Role {
		case entity.RoleUser:
			if lastUser == "" {
				lastUser = recent[i].Content
			}
		case entity.RoleAssistant:
			if topic == "" {
				topic = topicPattern.FindString(recent[i].Content)
			}
		}
	}

	if topic != "" {
		return trimmed + " (in context of " + strings.ToUpper(topic) + ")"
	}
	if lastUser == "" {
		return query
	}

	snippet := []rune(strings.TrimSpace(lastUser))
	if len(snippet) > contextSnippetMaxLen {
		snippet = snippet[:contextSnippetMaxLen]
	}
	return trimmed + " (related to: " + string(snippet) + "...)"
}
