package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func TestIsLongForm(t *testing.T) {
	assert.True(t, IsLongForm("Explain the ingredients of murder"))
	assert.True(t, IsLongForm("give me a detailed analysis"))
	assert.False(t, IsLongForm("punishment for theft"))
}

func TestBuildPrompt_Basics(t *testing.T) {
	req := entity.QueryRequest{Query: "What is BNS section 103?", Language: entity.LanguageEnglish}

	msgs := BuildPrompt(req, "---\nSource: bns\nContent: ...\n", "", false)

	require.Len(t, msgs, 2)
	assert.Equal(t, entity.ChatRoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Indian Legal Assistant")
	assert.Contains(t, msgs[0].Content, "ONLY from the provided context")
	assert.NotContains(t, msgs[0].Content, "Hindi")

	assert.Equal(t, entity.ChatRoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Context:")
	assert.Contains(t, msgs[1].Content, "Question: What is BNS section 103?")
	assert.NotContains(t, msgs[1].Content, "Conversation so far")
}

func TestBuildPrompt_HindiDirective(t *testing.T) {
	req := entity.QueryRequest{Query: "q", Language: entity.LanguageHindi}

	msgs := BuildPrompt(req, "ctx", "", false)

	assert.Contains(t, msgs[0].Content, "Respond in Hindi")
}

func TestBuildPrompt_LongFormDirective(t *testing.T) {
	req := entity.QueryRequest{Query: "q", Language: entity.LanguageEnglish}

	msgs := BuildPrompt(req, "ctx", "", true)

	assert.Contains(t, msgs[0].Content, "detailed answer")
}

func TestBuildPrompt_ModeDirectives(t *testing.T) {
	req := entity.QueryRequest{
		Query:         "q",
		Language:      entity.LanguageEnglish,
		ArgumentsMode: true,
		AnalysisMode:  true,
	}

	msgs := BuildPrompt(req, "ctx", "", false)

	assert.Contains(t, msgs[1].Content, "[FOR]")
	assert.Contains(t, msgs[1].Content, "[AGAINST]")
	assert.Contains(t, msgs[1].Content, "[FACTORS]")
	assert.Contains(t, msgs[1].Content, "[INTERPRETATIONS]")
}

func TestBuildPrompt_HistorySection(t *testing.T) {
	req := entity.QueryRequest{Query: "q", Language: entity.LanguageEnglish}

	msgs := BuildPrompt(req, "ctx", "User: earlier question\nAssistant: earlier answer", false)

	assert.Contains(t, msgs[1].Content, "Conversation so far:")
	assert.Contains(t, msgs[1].Content, "earlier question")
}

func TestBuildRouterPrompt(t *testing.T) {
	msgs := BuildRouterPrompt("is this legal")

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "reply SEARCH")
}

func TestBuildTranslatePrompt(t *testing.T) {
	msgs := BuildTranslatePrompt("some hindi text")

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "Translate the following")
	assert.Contains(t, msgs[1].Content, "some hindi text")
}
