package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func TestReformulate_NoHistory(t *testing.T) {
	got := Reformulate("what about it", nil)
	assert.Equal(t, "what about it", got)
}

func TestReformulate_StandaloneQueryUnchanged(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "Explain BNS section 103 to me"},
	}

	query := "What is the punishment for culpable homicide not amounting to murder in India"
	assert.Equal(t, query, Reformulate(query, history))
}

func TestReformulate_LongQueryUnchanged(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "Explain BNS section 103 to me"},
	}

	query := strings.Repeat("a", 301)
	assert.Equal(t, query, Reformulate(query, history))
}

func TestReformulate_FollowUpPicksUpAssistantTopic(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "what is the punishment for murder"},
		{Role: entity.RoleAssistant, Content: "Under BNS Section 103, murder is punishable with death or life imprisonment."},
	}

	got := Reformulate("what about bail", history)
	assert.Equal(t, "what about bail (in context of BNS SECTION 103)", got)
}

func TestReformulate_TopicBeatsUserSnippet(t *testing.T) {
	// The assistant's cited section is the topic even when a newer user
	// message is available for the snippet fallback.
	history := []entity.Message{
		{Role: entity.RoleAssistant, Content: "That falls under IPC Section 420."},
		{Role: entity.RoleUser, Content: "How do I file a complaint"},
		{Role: entity.RoleAssistant, Content: "File an FIR at the local police station."},
	}

	got := Reformulate("and then what", history)
	assert.Contains(t, got, "(in context of IPC SECTION 420)")
	assert.NotContains(t, got, "related to")
}

func TestReformulate_TopicWithoutUserMessage(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleAssistant, Content: "BNS Section 318 covers cheating."},
	}

	got := Reformulate("what about it", history)
	assert.Equal(t, "what about it (in context of BNS SECTION 318)", got)
}

func TestReformulate_EmbeddedTokenIsNotFollowUp(t *testing.T) {
	// "limitation" contains "it" but only whole-word matches count.
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "what is the punishment for murder"},
		{Role: entity.RoleAssistant, Content: "Under BNS Section 103, murder is punishable with death."},
	}

	query := "what is the limitation period for appeals"
	assert.Equal(t, query, Reformulate(query, history))
}

func TestReformulate_FollowUpWithoutTopicGetsSnippet(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "How do I file a complaint against my landlord"},
		{Role: entity.RoleAssistant, Content: "You can approach the rent tribunal."},
	}

	got := Reformulate("what about this", history)
	assert.Contains(t, got, "(related to: How do I file a complaint")
	assert.True(t, strings.HasSuffix(got, "...)"))
}

func TestReformulate_NoUserMessageInHistory(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleAssistant, Content: "Hello, how can I help?"},
	}

	assert.Equal(t, "what about it", Reformulate("what about it", history))
}

func TestReformulate_OnlyRecentHistoryConsidered(t *testing.T) {
	history := []entity.Message{
		{Role: entity.RoleUser, Content: "Explain IPC section 302"},
		{Role: entity.RoleAssistant, Content: "IPC Section 302 covered murder in the old code."},
		{Role: entity.RoleUser, Content: "What replaced it"},
		{Role: entity.RoleAssistant, Content: "Murder now falls under BNS Section 103."},
		{Role: entity.RoleUser, Content: "What is the sentence"},
		{Role: entity.RoleAssistant, Content: "Death or imprisonment for life."},
	}

	got := Reformulate("and the fine", history)
	assert.Contains(t, got, "BNS SECTION 103")
	assert.NotContains(t, got, "302")
}
