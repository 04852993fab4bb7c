package query

import (
	"strings"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

var longFormTriggers = []string{"explain", "detail", "elaborate", "analysis", "ingredients"}

const systemPersona = `You are an expert Indian Legal Assistant specialising in the Bhartiya Nyaya Sanhita (BNS), Indian Penal Code (IPC) and Supreme Court jurisprudence.

Rules:
- Answer ONLY from the provided context. If the context does not cover the question, say so plainly.
- Never invent section numbers, penalties or case names.
- Cite the relevant section or case while answering.
- Structure the answer: short direct answer first, then supporting detail.
- End with a disclaimer that this is informational, not legal advice.`

const simplePersona = `You are Legal Compass, a friendly assistant for Indian legal questions. Reply briefly and warmly. Do not give legal analysis here; invite the user to ask a legal question.`

// IsLongForm reports whether the query asks for an expanded answer.
func IsLongForm(query string) bool {
	q := strings.ToLower(query)
	for _, t := range longFormTriggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// BuildPrompt assembles the chat messages for a legal answer.
func BuildPrompt(req entity.QueryRequest, contextBlock, historyBlock string, longForm bool) []entity.ChatMessage {
	var sys strings.Builder
	sys.WriteString(systemPersona)
	if req.Language == entity.LanguageHindi {
		sys.WriteString("\n\nRespond in Hindi (Devanagari script). Keep statutory names and section numbers in English.")
	}
	if longForm {
		sys.WriteString("\n\nThe user wants a detailed answer. Cover the ingredients of the offence, punishment, and notable interpretations.")
	}

	var user strings.Builder
	user.WriteString("Context:\n")
	user.WriteString(contextBlock)
	if historyBlock != "" {
		user.WriteString("\n\nConversation so far:\n")
		user.WriteString(historyBlock)
	}
	user.WriteString("\n\nQuestion: ")
	user.WriteString(req.Query)

	if req.ArgumentsMode {
		user.WriteString("\n\nAfter the answer, add argument blocks exactly in this form:\n[FOR]\n- point\n[/FOR]\n[AGAINST]\n- point\n[/AGAINST]")
	}
	if req.AnalysisMode {
		user.WriteString("\n\nAfter the answer, add analysis blocks exactly in this form:\n[FACTORS]\n- factor\n[/FACTORS]\n[INTERPRETATIONS]\n- interpretation\n[/INTERPRETATIONS]")
	}

	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: sys.String()},
		{Role: entity.ChatRoleUser, Content: user.String()},
	}
}

// BuildSimplePrompt assembles the small-talk messages.
func BuildSimplePrompt(query string) []entity.ChatMessage {
	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: simplePersona},
		{Role: entity.ChatRoleUser, Content: query},
	}
}

// BuildTranslatePrompt asks for an English rendering of a query.
func BuildTranslatePrompt(query string) []entity.ChatMessage {
	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "You translate user questions to English for a legal search system. Reply with the translation only."},
		{Role: entity.ChatRoleUser, Content: "Translate the following to English:\n" + query},
	}
}

// BuildRouterPrompt asks the model whether retrieval is needed.
func BuildRouterPrompt(query string) []entity.ChatMessage {
	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "You are a router for a legal assistant: reply SEARCH if this needs legal lookup, else answer directly."},
		{Role: entity.ChatRoleUser, Content: query},
	}
}
