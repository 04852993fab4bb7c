package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/retrieval"
)

func newTestCache() *ResponseCache {
	return New(config.CacheConfig{
		SearchTTL:       time.Minute,
		AnswerTTL:       time.Minute,
		CleanupInterval: time.Minute,
	})
}

func TestSearchKey_Normalization(t *testing.T) {
	a := SearchKey(entity.LanguageEnglish, "  What Is Theft  ")
	b := SearchKey(entity.LanguageEnglish, "what is theft")
	assert.Equal(t, a, b)

	c := SearchKey(entity.LanguageHindi, "what is theft")
	assert.NotEqual(t, a, c)
}

func TestAnswerKey_TopTwoSources(t *testing.T) {
	citations := []entity.Citation{
		{Source: "Bhartiya Nyaya Sanhita, 2023"},
		{Source: "Supreme Court Judgment"},
		{Source: "Ignored Third Source"},
	}

	key := AnswerKey(entity.LanguageEnglish, "query", false, false, citations)
	assert.Contains(t, key, "Bhartiya Nyaya Sanhita, 2023")
	assert.Contains(t, key, "Supreme Court Judgment")
	assert.NotContains(t, key, "Ignored Third Source")

	// Different context, different key.
	other := AnswerKey(entity.LanguageEnglish, "query", false, false, citations[:1])
	assert.NotEqual(t, key, other)
}

func TestAnswerKey_ModeFlagsSeparateEntries(t *testing.T) {
	plain := AnswerKey(entity.LanguageEnglish, "query", false, false, nil)
	analysis := AnswerKey(entity.LanguageEnglish, "query", true, false, nil)
	arguments := AnswerKey(entity.LanguageEnglish, "query", false, true, nil)
	both := AnswerKey(entity.LanguageEnglish, "query", true, true, nil)

	keys := []string{plain, analysis, arguments, both}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			assert.NotEqual(t, keys[i], keys[j])
		}
	}
}

func TestSearchRoundTrip(t *testing.T) {
	c := newTestCache()
	key := SearchKey(entity.LanguageEnglish, "query")

	_, ok := c.GetSearch(key)
	assert.False(t, ok)

	want := &retrieval.Result{ContextBlock: "ctx", Accepted: 1}
	c.SetSearch(key, want)

	got, ok := c.GetSearch(key)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestAnswerRoundTrip(t *testing.T) {
	c := newTestCache()
	key := AnswerKey(entity.LanguageEnglish, "query", false, false, nil)

	_, ok := c.GetAnswer(key)
	assert.False(t, ok)

	want := &entity.StructuredAnswer{Answer: "cached", Disclaimer: entity.Disclaimer}
	c.SetAnswer(key, want)

	got, ok := c.GetAnswer(key)
	require.True(t, ok)
	assert.Equal(t, "cached", got.Answer)
}

func TestExpiredEntriesAreGone(t *testing.T) {
	c := New(config.CacheConfig{
		SearchTTL:       10 * time.Millisecond,
		AnswerTTL:       10 * time.Millisecond,
		CleanupInterval: time.Minute,
	})

	key := SearchKey(entity.LanguageEnglish, "query")
	c.SetSearch(key, &retrieval.Result{ContextBlock: "ctx"})

	time.Sleep(20 * time.Millisecond)

	_, ok := c.GetSearch(key)
	assert.False(t, ok)
}
