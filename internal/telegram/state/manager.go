// Package state keeps per-chat bot state: the conversation session bound to
// the chat and the preferred answer language.
package state

import (
	"sync"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// ChatState is the bot-side state of one Telegram chat.
type ChatState struct {
	SessionID string
	Language  entity.QueryLanguage
}

// Manager stores chat state in memory. Bot state is disposable: losing it on
// restart only resets language preference and conversation binding.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*ChatState
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*ChatState),
	}
}

// Get returns the state for a chat, creating a default one if absent.
func (m *Manager) Get(chatID int64) ChatState {
	m.mu.RLock()
	st, ok := m.states[chatID]
	m.mu.RUnlock()
	if ok {
		return *st
	}
	return ChatState{Language: entity.LanguageEnglish}
}

func (m *Manager) SetSession(chatID int64, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(chatID).SessionID = sessionID
}

func (m *Manager) SetLanguage(chatID int64, lang entity.QueryLanguage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(chatID).Language = lang
}

func (m *Manager) ClearSession(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[chatID]; ok {
		st.SessionID = ""
	}
}

func (m *Manager) ensure(chatID int64) *ChatState {
	st, ok := m.states[chatID]
	if !ok {
		st = &ChatState{Language: entity.LanguageEnglish}
		m.states[chatID] = st
	}
	return st
}
