package query

import "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"

// QueryResponse is the wire shape of an answered query.
type QueryResponse struct {
	entity.StructuredAnswer
	SessionID string `json:"session_id,omitempty"`
}

func toQueryResponse(answer *entity.StructuredAnswer, sessionID string) QueryResponse {
	return QueryResponse{
		StructuredAnswer: *answer,
		SessionID:        sessionID,
	}
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CompareRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

type CompareResponse struct {
	Comparison string `json:"comparison"`
}

type ExportRequest struct {
	Title   string              `json:"title"`
	Content string              `json:"content"`
	Format  entity.ExportFormat `json:"format"`
}
