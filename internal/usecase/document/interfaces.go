package document

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error)
}
