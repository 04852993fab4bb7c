// Package query implements the question answering pipeline: reformulation,
// intent routing, retrieval, prompt construction, generation and response
// post-processing.
package query

import (
	"context"
	"errors"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/cache"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/retrieval"
)

const notConfiguredAnswer ="The language model is not configured, so a generated answer is unavailable. The citations below were retrieved for your query."

// Usecase runs the full answer pipeline. The caller owns session history:
// it passes recent messages in and persists the exchange afterwards.
type Usecase struct {
	llm       LLMConnector
	retriever Retriever
	cache     *cache.ResponseCache
	cfg       config.QueryConfig
}

func NewUsecase(llm LLMConnector, retriever Retriever, responseCache *cache.ResponseCache, cfg config.QueryConfig) *Usecase {
	return &Usecase{
		llm:       llm,
		retriever: retriever,
		cache:     responseCache,
		cfg:       cfg,
	}
}

// Answer resolves one query against the knowledge base. It never returns an
// error to the caller for pipeline failures: degraded answers carry the
// failure in the Answer field instead, so the conversation survives.
func (u *Usecase) Answer(ctx context.Context, req entity.QueryRequest, history []entity.Message) *entity.StructuredAnswer {
	queryText := strings.TrimSpace(req.Query)
	if len(history) > 0 {
		reformulated := Reformulate(queryText, history)
		if reformulated != queryText {
			ctxzap.Debug(ctx, "query reformulated",
				zap.String("original", queryText),
				zap.String("reformulated", reformulated),
			)
			queryText = reformulated
		}
	}
	// Downstream stages all see the standalone form.
	req.Query = queryText

	if Classify(queryText) == IntentSimple {
		if answer := u.answerSimple(ctx, queryText); answer != nil {
			return answer
		}
	}

	if u.cfg.RouterLLMEnabled {
		if direct, ok := u.routeWithLLM(ctx, queryText); ok {
			return &entity.StructuredAnswer{Answer: direct, Disclaimer: entity.Disclaimer}
		}
	}

	return u.answerLegal(ctx, req, queryText, history)
}

// answerSimple handles small talk with a lightweight persona prompt. A failed
// or empty completion returns nil and the query continues down the retrieval
// path instead.
func (u *Usecase) answerSimple(ctx context.Context, queryText string) *entity.StructuredAnswer {
	content, err := u.llm.Complete(ctx, &entity.LLMCompletionRequest{
		Messages:  BuildSimplePrompt(queryText),
		MaxTokens: u.cfg.SimpleMaxTokens,
	})
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil && !errors.Is(err, entity.ErrLLMNotConfigured) {
			ctxzap.Warn(ctx, "small talk completion failed, routing through retrieval", zap.Error(err))
		}
		return nil
	}
	return &entity.StructuredAnswer{Answer: content, Disclaimer: entity.Disclaimer}
}

// routeWithLLM asks the model whether the query needs retrieval. Any reply
// other than SEARCH is treated as the direct answer. Router failures fall
// through to the retrieval path.
func (u *Usecase) routeWithLLM(ctx context.Context, queryText string) (string, bool) {
	routerCtx, cancel := context.WithTimeout(ctx, u.cfg.RouterTimeout)
	defer cancel()

	content, err := u.llm.Complete(routerCtx, &entity.LLMCompletionRequest{
		Messages:  BuildRouterPrompt(queryText),
		MaxTokens: u.cfg.RouterMaxTokens,
	})
	if err != nil {
		ctxzap.Warn(ctx, "router completion failed, falling back to retrieval", zap.Error(err))
		return "", false
	}
	if strings.EqualFold(strings.TrimSpace(content), "SEARCH") || content == "" {
		return "", false
	}
	return content, true
}

func (u *Usecase) answerLegal(ctx context.Context, req entity.QueryRequest, queryText string, history []entity.Message) *entity.StructuredAnswer {
	searchQuery := queryText
	if req.Language != entity.LanguageEnglish {
		searchQuery = u.translateForSearch(ctx, queryText)
	}

	searchKey := cache.SearchKey(req.Language, searchQuery)
	result, hit := u.cache.GetSearch(searchKey)
	if !hit {
		result, _ = u.retriever.Retrieve(ctx, searchQuery)
		u.cache.SetSearch(searchKey, result)
	} else {
		ctxzap.Debug(ctx, "search cache hit", zap.String("key", searchKey))
	}

	answerKey := cache.AnswerKey(req.Language, queryText, req.AnalysisMode, req.ArgumentsMode, result.Citations)
	if cached, ok := u.cache.GetAnswer(answerKey); ok {
		ctxzap.Debug(ctx, "answer cache hit", zap.String("key", answerKey))
		return cached
	}

	contextBlock := result.ContextBlock
	if contextBlock == "" {
		contextBlock = "No relevant statutes or judgments were found for this query."
	}

	longForm := IsLongForm(queryText)
	maxTokens := u.cfg.DefaultMaxTokens
	if longForm {
		maxTokens = u.cfg.LongFormMaxTokens
	}

	genCtx, cancel := context.WithTimeout(ctx, u.cfg.GenerateTimeout)
	defer cancel()

	raw, err := u.llm.Complete(genCtx, &entity.LLMCompletionRequest{
		Messages:  BuildPrompt(req, contextBlock, historyBlock(history), longForm),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return u.failedAnswer(ctx, err, result)
	}

	answer := ParseCompletion(raw, req.AnalysisMode, req.ArgumentsMode)
	answer.Citations = capCitations(result.Citations, u.cfg.MaxCitations)
	answer.RelatedJudgments = capJudgments(result.RelatedJudgments, u.cfg.MaxCitations)

	u.cache.SetAnswer(answerKey, &answer)
	return &answer
}

// translateForSearch renders a non-English query into English for the vector
// search. The generation prompt still sees the original query.
func (u *Usecase) translateForSearch(ctx context.Context, queryText string) string {
	trCtx, cancel := context.WithTimeout(ctx, u.cfg.TranslateTimeout)
	defer cancel()

	content, err := u.llm.Complete(trCtx, &entity.LLMCompletionRequest{
		Messages:  BuildTranslatePrompt(queryText),
		MaxTokens: u.cfg.TranslateTokens,
	})
	if err != nil || strings.TrimSpace(content) == "" {
		ctxzap.Warn(ctx, "query translation failed, searching with original text", zap.Error(err))
		return queryText
	}
	return strings.TrimSpace(content)
}

// failedAnswer builds the degraded response for a generation failure. These
// are never cached.
func (u *Usecase) failedAnswer(ctx context.Context, err error, result *retrieval.Result) *entity.StructuredAnswer {
	answer := &entity.StructuredAnswer{
		Citations:        capCitations(result.Citations, u.cfg.MaxCitations),
		RelatedJudgments: capJudgments(result.RelatedJudgments, u.cfg.MaxCitations),
		Disclaimer:       entity.Disclaimer,
	}
	if errors.Is(err, entity.ErrLLMNotConfigured) {
		ctxzap.Warn(ctx, "generation skipped, no API key configured")
		answer.Answer = notConfiguredAnswer
		return answer
	}
	ctxzap.Error(ctx, "generation failed", zap.Error(err))
	answer.Answer = "Error: " + err.Error()
	return answer
}

func historyBlock(history []entity.Message) string {
	if len(history) == 0 {
		return ""
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		prefix := "User: "
		if m.Role == entity.RoleAssistant {
			prefix = "Assistant: "
		}
		lines = append(lines, prefix+m.Content)
	}
	return strings.Join(lines, "\n")
}

func capCitations(citations []entity.Citation, limit int) []entity.Citation {
	if len(citations) > limit {
		return citations[:limit]
	}
	return citations
}

func capJudgments(judgments []entity.RelatedJudgment, limit int) []entity.RelatedJudgment {
	if len(judgments) > limit {
		return judgments[:limit]
	}
	return judgments
}
