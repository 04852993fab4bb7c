package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/conversation"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func newTestRouter(store ConversationStore) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(store))
	return r
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(conversation.NewMemoryStore(zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session", nil))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
}

func TestGetSession_NotFound(t *testing.T) {
	router := newTestRouter(conversation.NewMemoryStore(zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	store := conversation.NewMemoryStore(zap.NewNop())
	router := newTestRouter(store)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleUser, "what is theft"))
	require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleAssistant, "dishonest taking"))

	// Metadata reflects both messages.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/"+sessionID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var info entity.SessionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 2, info.MessageCount)

	// History comes back in order.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var history HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Messages, 2)
	assert.Equal(t, entity.RoleUser, history.Messages[0].Role)

	// Clear keeps the session but drops messages.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/clear", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/history", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Empty(t, history.Messages)

	// Delete removes it entirely.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/session/"+sessionID, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/"+sessionID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHistory_InvalidMax(t *testing.T) {
	router := newTestRouter(conversation.NewMemoryStore(zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/abc/history?max=zero", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
