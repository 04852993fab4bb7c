package session

import "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type HistoryResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []entity.Message `json:"messages"`
}

func toHistoryResponse(sessionID string, messages []entity.Message) HistoryResponse {
	if messages == nil {
		messages = []entity.Message{}
	}
	return HistoryResponse{SessionID: sessionID, Messages: messages}
}
