package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type stubSearcher struct {
	hits []entity.RetrievalHit
	err  error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]entity.RetrievalHit, error) {
	return s.hits, s.err
}

func testConfig() config.QueryConfig {
	return config.QueryConfig{
		TopK:           5,
		DistanceCutoff: 0.45,
		MaxContextHits: 4,
		MaxCitations:   3,
	}
}

func statuteHit(section string, distance float64) entity.RetrievalHit {
	return entity.RetrievalHit{
		Document: "Section " + section + ". Some statutory text.",
		Metadata: map[string]string{
			entity.MetaKeySource:     "bns",
			entity.MetaKeyType:       entity.DocTypeStatute,
			entity.MetaKeyBNSSection: section,
		},
		Distance: distance,
	}
}

func judgmentHit(title string, distance float64) entity.RetrievalHit {
	return entity.RetrievalHit{
		Document: "The Court held something notable.",
		Metadata: map[string]string{
			entity.MetaKeySource: "judgments",
			entity.MetaKeyType:   entity.DocTypeJudgment,
			entity.MetaKeyTitle:  title,
			entity.MetaKeyCaseID: "2020-SC-0001",
		},
		Distance: distance,
	}
}

func TestRetrieve_NilSearcher(t *testing.T) {
	r := NewRetriever(nil, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, ContextUnavailable, result.ContextBlock)
	assert.Empty(t, result.Citations)
	assert.Zero(t, result.Accepted)
}

func TestRetrieve_SearchErrorDegrades(t *testing.T) {
	r := NewRetriever(&stubSearcher{err: errors.New("store offline")}, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, ContextUnavailable, result.ContextBlock)
}

func TestRetrieve_DistanceCutoff(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.RetrievalHit{
		statuteHit("103", 0.10),
		statuteHit("104", 0.46),
	}}
	r := NewRetriever(searcher, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "murder punishment")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "Section 103", result.Citations[0].Section)
	assert.NotContains(t, result.ContextBlock, "104")
}

func TestRetrieve_ContextHitCap(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.RetrievalHit{
		statuteHit("101", 0.1),
		statuteHit("102", 0.1),
		statuteHit("103", 0.1),
		statuteHit("104", 0.1),
		statuteHit("105", 0.1),
	}}
	r := NewRetriever(searcher, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Accepted)
	assert.Len(t, result.Citations, 4)
}

func TestRetrieve_JudgmentMapping(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.RetrievalHit{
		judgmentHit("State v. Example", 0.2),
	}}
	r := NewRetriever(searcher, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "Supreme Court Judgment", result.Citations[0].Source)
	assert.Equal(t, "State v. Example", result.Citations[0].Section)

	require.Len(t, result.RelatedJudgments, 1)
	assert.Equal(t, "State v. Example", result.RelatedJudgments[0].Title)
	assert.Equal(t, "2020-SC-0001", result.RelatedJudgments[0].CaseID)
}

func TestRetrieve_UnknownCaseNotRelated(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.RetrievalHit{
		judgmentHit(entity.UnknownTitle, 0.2),
	}}
	r := NewRetriever(searcher, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, result.Citations, 1)
	assert.Empty(t, result.RelatedJudgments)
}

func TestRetrieve_SectionKeyFallback(t *testing.T) {
	hit := entity.RetrievalHit{
		Document: "Section text.",
		Metadata: map[string]string{
			entity.MetaKeySource:     "ipc",
			entity.MetaKeyType:       entity.DocTypeStatute,
			entity.MetaKeyIPCSection: "302",
		},
		Distance: 0.2,
	}
	r := NewRetriever(&stubSearcher{hits: []entity.RetrievalHit{hit}}, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "Section 302", result.Citations[0].Section)
}

func TestRetrieve_ContextBlockFormat(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.RetrievalHit{statuteHit("103", 0.1)}}
	r := NewRetriever(searcher, testConfig(), zap.NewNop())

	result, err := r.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Contains(t, result.ContextBlock, "---\nSource: bns\nContent: Section 103.")
}
