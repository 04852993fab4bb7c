// Package retrieval turns raw vector-store hits into prompt context and
// typed citations.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// ContextUnavailable is the sentinel context block used when the vector
// store is missing or the search call fails. Generation proceeds without
// retrieved context.
const ContextUnavailable = "Database not available. Answer generically."

const (
	statuteSource   = "Bhartiya Nyaya Sanhita, 2023"
	judgmentSource  = "Supreme Court Judgment"
	excerptMaxChars = 200
)

// Searcher is the vector-store capability: top-k hits ordered by ascending
// distance. A nil Searcher means the store was never initialized.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]entity.RetrievalHit, error)
}

// Result is the post-processed outcome of one retrieval.
type Result struct {
	ContextBlock     string
	Citations        []entity.Citation
	RelatedJudgments []entity.RelatedJudgment
	Accepted         int
}

// Retriever applies the distance cutoff and context cap on top of a Searcher.
type Retriever struct {
	searcher Searcher
	cfg      config.QueryConfig
	logger   *zap.Logger
}

func NewRetriever(searcher Searcher, cfg config.QueryConfig, logger *zap.Logger) *Retriever {
	return &Retriever{
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Retrieve searches the vector store and maps accepted hits into citations
// and related judgments. An unavailable store is not an error: the result
// carries the sentinel context block and no citations.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	if r.searcher == nil {
		ctxzap.Warn(ctx, "vector store not initialized, proceeding without context")
		return &Result{ContextBlock: ContextUnavailable}, nil
	}

	hits, err := r.searcher.Search(ctx, query, r.cfg.TopK)
	if err != nil {
		ctxzap.Warn(ctx, "vector search failed, proceeding without context", zap.Error(err))
		return &Result{ContextBlock: ContextUnavailable}, nil
	}

	result := &Result{}
	var contextBlock strings.Builder

	for _, hit := range hits {
		// Hits beyond the cutoff are noise, not "best available" matches.
		// This may legitimately leave zero usable hits.
		if hit.Distance > r.cfg.DistanceCutoff {
			continue
		}
		if result.Accepted >= r.cfg.MaxContextHits {
			break
		}
		result.Accepted++

		fmt.Fprintf(&contextBlock, "---\nSource: %s\nContent: %s\n", hit.Source(), hit.Document)

		switch hit.Type() {
		case entity.DocTypeStatute:
			result.Citations = append(result.Citations, statuteCitation(hit))
		case entity.DocTypeJudgment:
			result.Citations = append(result.Citations, judgmentCitation(hit))
			if j, ok := relatedJudgment(hit); ok {
				result.RelatedJudgments = append(result.RelatedJudgments, j)
			}
		}
	}

	result.ContextBlock = contextBlock.String()

	ctxzap.Debug(ctx, "retrieval finished",
		zap.Int("raw_hits", len(hits)),
		zap.Int("accepted", result.Accepted),
		zap.Int("citations", len(result.Citations)),
	)

	return result, nil
}

func statuteCitation(hit entity.RetrievalHit) entity.Citation {
	return entity.Citation{
		Source:  statuteSource,
		Section: fmt.Sprintf("Section %s", sectionNumber(hit.Metadata)),
		Excerpt: excerpt(hit.Document),
		URL:     hit.Metadata[entity.MetaKeyURL],
	}
}

func judgmentCitation(hit entity.RetrievalHit) entity.Citation {
	section := hit.Metadata[entity.MetaKeyTitle]
	if section == "" {
		section = "Case Law"
	}
	return entity.Citation{
		Source:  judgmentSource,
		Section: section,
		Excerpt: excerpt(hit.Document),
		URL:     hit.Metadata[entity.MetaKeyURL],
	}
}

func relatedJudgment(hit entity.RetrievalHit) (entity.RelatedJudgment, bool) {
	title := hit.Metadata[entity.MetaKeyTitle]
	if title == "" || title == entity.UnknownTitle {
		return entity.RelatedJudgment{}, false
	}
	return entity.RelatedJudgment{
		Title:   title,
		Excerpt: excerpt(hit.Document),
		CaseID:  hit.Metadata[entity.MetaKeyCaseID],
	}, true
}

// sectionNumber prefers the generic key and falls back to scheme-specific
// ones written by older corpus versions.
func sectionNumber(metadata map[string]string) string {
	for _, key := range []string{entity.MetaKeySection, entity.MetaKeyBNSSection, entity.MetaKeyIPCSection} {
		if v := metadata[key]; v != "" {
			return v
		}
	}
	return "N/A"
}

func excerpt(document string) string {
	runes := []rune(document)
	if len(runes) <= excerptMaxChars {
		return document
	}
	return string(runes[:excerptMaxChars]) + "..."
}
