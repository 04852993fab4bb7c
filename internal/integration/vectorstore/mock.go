package vectorstore

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// MockSearcher returns canned statute and judgment hits for local development.
type MockSearcher struct{}

func NewMockSearcher() *MockSearcher {
	return &MockSearcher{}
}

func (m *MockSearcher) Search(_ context.Context, _ string, k int) ([]entity.RetrievalHit, error) {
	hits := []entity.RetrievalHit{
		{
			Document: "Section 103. Punishment for murder. Whoever commits murder shall be punished with death or imprisonment for life, and shall also be liable to fine.",
			Metadata: map[string]string{
				entity.MetaKeySource:     "bns",
				entity.MetaKeyType:       entity.DocTypeStatute,
				entity.MetaKeyBNSSection: "103",
			},
			Distance: 0.12,
		},
		{
			Document: "The Court held that the prosecution must establish intention beyond reasonable doubt before a conviction for murder can be sustained.",
			Metadata: map[string]string{
				entity.MetaKeySource: "judgments",
				entity.MetaKeyType:   entity.DocTypeJudgment,
				entity.MetaKeyTitle:  "State of Maharashtra v. Example",
				entity.MetaKeyCaseID: "2019-SC-0042",
			},
			Distance: 0.21,
		},
	}
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}
