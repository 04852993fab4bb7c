// Package document implements summarization and comparison of uploaded
// legal documents.
package document

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

const (
	chunkSize = 8000
	maxChunks = 5

	chunkSummaryTokens  = 600
	masterSummaryTokens = 1500

	previewChars = 500
)

const summarySystemPrompt = `You summarise legal documents for Indian practitioners. Produce a markdown summary with these sections:
## Overview
## Key Provisions
## Parties and Obligations
## Risks and Notable Clauses
Be factual; do not add content absent from the document.`

const compareSystemPrompt = `You compare two legal texts for Indian practitioners. Produce a markdown report with these sections:
## Common Ground
## Differences
## Practical Impact
Refer to the texts as Text A and Text B.`

var whitespaceRun = regexp.MustCompile(`[\t ]{2,}|\r`)

// Usecase summarises and compares plain-text legal documents.
type Usecase struct {
	llm LLMConnector
	cfg config.QueryConfig
}

func NewUsecase(llm LLMConnector, cfg config.QueryConfig) *Usecase {
	return &Usecase{llm: llm, cfg: cfg}
}

// ExtractText validates an uploaded file and returns its cleaned text
// content. Only plain-text uploads are supported.
func ExtractText(filename string, data []byte) (string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", fmt.Errorf("%w: PDF uploads are not supported, paste the text or upload a .txt file", entity.ErrUnsupportedFormat)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", entity.ErrUnsupportedFormat)
	}
	text := whitespaceRun.ReplaceAllString(string(data), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: document is empty", entity.ErrMissingField)
	}
	return text, nil
}

// Summarize chunk-summarises the document and then combines the chunk
// summaries into one master summary. Individual chunk failures are skipped;
// a missing API key degrades to a preview of the extracted text rather than
// an error.
func (u *Usecase) Summarize(ctx context.Context, text string) (string, error) {
	chunks := splitChunks(text, chunkSize, maxChunks)

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		genCtx, cancel := context.WithTimeout(ctx, u.cfg.GenerateTimeout)
		content, err := u.llm.Complete(genCtx, &entity.LLMCompletionRequest{
			Messages: []entity.ChatMessage{
				{Role: entity.ChatRoleSystem, Content: "Summarise this part of a legal document in a few factual paragraphs."},
				{Role: entity.ChatRoleUser, Content: chunk},
			},
			MaxTokens: chunkSummaryTokens,
		})
		cancel()
		if err != nil {
			if errors.Is(err, entity.ErrLLMNotConfigured) {
				return extractPreview(text), nil
			}
			ctxzap.Warn(ctx, "chunk summary failed, skipping",
				zap.Int("chunk", i),
				zap.Error(err),
			)
			continue
		}
		summaries = append(summaries, content)
	}

	if len(summaries) == 0 {
		return "", fmt.Errorf("summarize document: all chunk summaries failed")
	}

	genCtx, cancel := context.WithTimeout(ctx, u.cfg.GenerateTimeout)
	defer cancel()

	master, err := u.llm.Complete(genCtx, &entity.LLMCompletionRequest{
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: summarySystemPrompt},
			{Role: entity.ChatRoleUser, Content: strings.Join(summaries, "\n\n")},
		},
		MaxTokens: masterSummaryTokens,
	})
	if err != nil {
		return "", fmt.Errorf("combine chunk summaries: %w", err)
	}
	return master, nil
}

// Compare produces a structured comparison of two legal texts.
func (u *Usecase) Compare(ctx context.Context, textA, textB string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, u.cfg.GenerateTimeout)
	defer cancel()

	content, err := u.llm.Complete(genCtx, &entity.LLMCompletionRequest{
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: compareSystemPrompt},
			{Role: entity.ChatRoleUser, Content: "Text A:\n" + textA + "\n\nText B:\n" + textB},
		},
		MaxTokens: masterSummaryTokens,
	})
	if err != nil {
		if errors.Is(err, entity.ErrLLMNotConfigured) {
			return "Comparison requires a configured language model API key.", nil
		}
		return "", fmt.Errorf("compare documents: %w", err)
	}
	return content, nil
}

// extractPreview is the degraded summary when no generation key is set: the
// caller still learns extraction worked and sees how the document starts.
func extractPreview(text string) string {
	runes := []rune(text)
	preview := runes
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}
	return fmt.Sprintf("Language model not configured. Extracted %d chars. Start: %s...", len(runes), string(preview))
}

// splitChunks slices text into rune-safe chunks, dropping anything past the
// chunk budget.
func splitChunks(text string, size, limit int) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > 0 && len(chunks) < limit {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
