package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type sessionRecord struct {
	messages []entity.Message
	info     entity.SessionInfo
}

// MemoryStore keeps sessions in a process-lifetime map. Histories are
// append-only; a read-then-append race between two writers to the same
// session can only reorder messages, never corrupt them.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
	logger   *zap.Logger
}

var _ Store = &MemoryStore{}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*sessionRecord),
		logger:   logger,
	}
}

func (s *MemoryStore) CreateSession(_ context.Context) (string, error) {
	sessionID := uuid.New().String()
	now := time.Now()

	s.mu.Lock()
	s.sessions[sessionID] = &sessionRecord{
		info: entity.SessionInfo{
			SessionID:    sessionID,
			CreatedAt:    now,
			LastActivity: now,
		},
	}
	s.mu.Unlock()

	s.logger.Debug("created session", zap.String("session_id", sessionID))
	return sessionID, nil
}

func (s *MemoryStore) AddMessage(_ context.Context, sessionID string, role entity.MessageRole, content string) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		s.logger.Warn("session not found, creating implicitly", zap.String("session_id", sessionID))
		rec = &sessionRecord{
			info: entity.SessionInfo{
				SessionID:    sessionID,
				CreatedAt:    now,
				LastActivity: now,
			},
		}
		s.sessions[sessionID] = rec
	}

	rec.messages = append(rec.messages, entity.Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	rec.info.LastActivity = now
	rec.info.MessageCount++

	return nil
}

func (s *MemoryStore) GetHistory(_ context.Context, sessionID string, maxMessages int) ([]entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	msgs := rec.messages
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}

	out := make([]entity.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) GetContextString(ctx context.Context, sessionID string, maxMessages int) (string, error) {
	history, err := s.GetHistory(ctx, sessionID, maxMessages)
	if err != nil {
		return "", err
	}
	return ContextString(history), nil
}

func (s *MemoryStore) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}

	rec.messages = nil
	rec.info.MessageCount = 0
	rec.info.LastActivity = time.Now()

	s.logger.Debug("cleared session", zap.String("session_id", sessionID))
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil
	}

	delete(s.sessions, sessionID)
	s.logger.Debug("deleted session", zap.String("session_id", sessionID))
	return nil
}

func (s *MemoryStore) GetSessionInfo(_ context.Context, sessionID string) (*entity.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	info := rec.info
	return &info, nil
}

func (s *MemoryStore) CleanupOldSessions(_ context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int
	for sessionID, rec := range s.sessions {
		if rec.info.LastActivity.Before(cutoff) {
			delete(s.sessions, sessionID)
			deleted++
		}
	}

	if deleted > 0 {
		s.logger.Info("cleaned up old sessions", zap.Int("deleted", deleted))
	}

	return deleted, nil
}
