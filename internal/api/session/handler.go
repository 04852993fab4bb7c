package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/logger"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/response"
)

const defaultHistoryLimit = 50

type Handler struct {
	store ConversationStore
}

func NewHandler(store ConversationStore) *Handler {
	return &Handler{store: store}
}

// CreateSession handles POST /session - create a conversation session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	sessionID, err := h.store.CreateSession(ctx)
	if err != nil {
		h.handleStoreError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", sessionID))
	response.Created(w, CreateSessionResponse{SessionID: sessionID})
}

// GetSession handles GET /session/{id} - session metadata
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", "GetSession"),
	)
	sessionID := chi.URLParam(r, "id")

	info, err := h.store.GetSessionInfo(ctx, sessionID)
	if err != nil {
		h.handleStoreError(ctx, w, err)
		return
	}
	if info == nil {
		response.Error(w, http.StatusNotFound, "session not found")
		return
	}

	response.Success(w, info)
}

// GetHistory handles GET /session/{id}/history?max=N - conversation history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetHistory"),
	)

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest, "max must be a positive integer")
			return
		}
		limit = parsed
	}

	messages, err := h.store.GetHistory(ctx, sessionID, limit)
	if err != nil {
		h.handleStoreError(ctx, w, err)
		return
	}

	response.Success(w, toHistoryResponse(sessionID, messages))
}

// ClearSession handles POST /session/{id}/clear - drop messages, keep session
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ClearSession"),
	)

	if err := h.store.ClearSession(ctx, sessionID); err != nil {
		h.handleStoreError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session cleared")
	response.Success(w, map[string]string{"message": "session cleared"})
}

// DeleteSession handles DELETE /session/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "DeleteSession"),
	)

	if err := h.store.DeleteSession(ctx, sessionID); err != nil {
		h.handleStoreError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session deleted")
	response.NoContent(w)
}

func (h *Handler) handleStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "session store call failed", zap.Error(err))
	if errors.Is(err, entity.ErrSessionNotFound) {
		response.Error(w, http.StatusNotFound, "session not found")
		return
	}
	response.Error(w, http.StatusInternalServerError, "internal server error")
}
