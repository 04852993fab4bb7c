package query

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/retrieval"
)

// LLMConnector is the completion capability the pipeline depends on.
type LLMConnector interface {
	Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error)
}

// Retriever turns a search query into prompt context and citations.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (*retrieval.Result, error)
}
