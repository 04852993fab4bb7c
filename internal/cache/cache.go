// Package cache memoizes retrieval result sets and final structured answers.
// Entries carry a TTL and are evicted by the janitor; the cache is never
// allowed to grow without bound.
package cache

import (
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/retrieval"
)

// ResponseCache holds both cache tiers of the query pipeline: raw search
// results (keyed on the search query) and structured answers (keyed on query
// plus top citation sources).
type ResponseCache struct {
	search  *gocache.Cache
	answers *gocache.Cache
}

func New(cfg config.CacheConfig) *ResponseCache {
	return &ResponseCache{
		search:  gocache.New(cfg.SearchTTL, cfg.CleanupInterval),
		answers: gocache.New(cfg.AnswerTTL, cfg.CleanupInterval),
	}
}

// SearchKey fingerprints a retrieval request.
func SearchKey(language entity.QueryLanguage, query string) string {
	return "search|" + string(language) + "|" + normalize(query)
}

// AnswerKey fingerprints a generation request: language, mode flags, query,
// and the top two citation sources. The flags are part of the key because a
// cached answer carries the structured sections of the request that produced
// it; serving it to a request with different flags would leak or drop them.
func AnswerKey(language entity.QueryLanguage, query string, analysisMode, argumentsMode bool, citations []entity.Citation) string {
	sources := make([]string, 0, 2)
	for i, c := range citations {
		if i == 2 {
			break
		}
		sources = append(sources, c.Source)
	}
	return "answer|" + string(language) +
		"|" + strconv.FormatBool(analysisMode) + "|" + strconv.FormatBool(argumentsMode) +
		"|" + normalize(query) + "|" + strings.Join(sources, ",")
}

func (c *ResponseCache) GetSearch(key string) (*retrieval.Result, bool) {
	v, ok := c.search.Get(key)
	if !ok {
		return nil, false
	}
	result, ok := v.(*retrieval.Result)
	return result, ok
}

func (c *ResponseCache) SetSearch(key string, result *retrieval.Result) {
	c.search.SetDefault(key, result)
}

func (c *ResponseCache) GetAnswer(key string) (*entity.StructuredAnswer, bool) {
	v, ok := c.answers.Get(key)
	if !ok {
		return nil, false
	}
	answer, ok := v.(*entity.StructuredAnswer)
	return answer, ok
}

func (c *ResponseCache) SetAnswer(key string, answer *entity.StructuredAnswer) {
	c.answers.SetDefault(key, answer)
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
