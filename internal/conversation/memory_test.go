package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(zap.NewNop())
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	history, err := store.GetHistory(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	info, err := store.GetSessionInfo(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, store.ClearSession(ctx, "missing"))
	require.NoError(t, store.DeleteSession(ctx, "missing"))
}

func TestMemoryStore_CreateAndAppend(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleUser, "What is BNS Section 103?"))
	require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleAssistant, "Punishment for murder."))

	history, err := store.GetHistory(ctx, sessionID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.RoleUser, history[0].Role)
	assert.Equal(t, entity.RoleAssistant, history[1].Role)
	assert.Equal(t, "What is BNS Section 103?", history[0].Content)

	info, err := store.GetSessionInfo(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 2, info.MessageCount)
	assert.Equal(t, sessionID, info.SessionID)
}

func TestMemoryStore_ImplicitCreation(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.AddMessage(ctx, "never-created", entity.RoleUser, "hello"))

	info, err := store.GetSessionInfo(ctx, "never-created")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 1, info.MessageCount)
}

func TestMemoryStore_HistoryWindow(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three", "four"} {
		require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleUser, content))
	}

	history, err := store.GetHistory(ctx, sessionID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "three", history[0].Content)
	assert.Equal(t, "four", history[1].Content)
}

func TestMemoryStore_ClearKeepsSession(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.AddMessage(ctx, sessionID, entity.RoleUser, "hello"))

	require.NoError(t, store.ClearSession(ctx, sessionID))

	history, err := store.GetHistory(ctx, sessionID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	info, err := store.GetSessionInfo(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 0, info.MessageCount)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSession(ctx, sessionID))

	info, err := store.GetSessionInfo(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestMemoryStore_CleanupOldSessions(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	stale, err := store.CreateSession(ctx)
	require.NoError(t, err)

	store.mu.Lock()
	store.sessions[stale].info.LastActivity = time.Now().Add(-48 * time.Hour)
	store.mu.Unlock()

	fresh, err := store.CreateSession(ctx)
	require.NoError(t, err)

	removed, err := store.CleanupOldSessions(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	info, err := store.GetSessionInfo(ctx, stale)
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = store.GetSessionInfo(ctx, fresh)
	require.NoError(t, err)
	assert.NotNil(t, info)
}

func TestContextString(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.RoleUser, Content: "What is theft?"},
		{Role: entity.RoleAssistant, Content: "Dishonest taking of movable property."},
	}

	got := ContextString(messages)
	assert.Equal(t, "User: What is theft?\nAssistant: Dishonest taking of movable property.", got)

	assert.Equal(t, "", ContextString(nil))
}
