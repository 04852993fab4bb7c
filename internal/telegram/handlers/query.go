// Package handlers contains the bot's message handlers.
package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/telegram/state"
)

const startText = `Namaste! I am Legal Compass, an assistant for Indian legal questions.

Ask me about the Bhartiya Nyaya Sanhita, the Indian Penal Code or Supreme Court judgments.

Commands:
/clear - start a fresh conversation
/language en|hi - set the answer language
/help - show this message`

const historyWindow = 10

// QueryHandler answers free-text legal questions and the bot commands.
type QueryHandler struct {
	api     *tgbotapi.BotAPI
	queries QueryUsecase
	store   ConversationStore
	states  *state.Manager
	logger  *zap.Logger
}

func NewQueryHandler(
	api *tgbotapi.BotAPI,
	queries QueryUsecase,
	store ConversationStore,
	states *state.Manager,
	logger *zap.Logger,
) *QueryHandler {
	return &QueryHandler{
		api:     api,
		queries: queries,
		store:   store,
		states:  states,
		logger:  logger,
	}
}

// Handle routes one message.
func (h *QueryHandler) Handle(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}
	if strings.TrimSpace(message.Text) == "" {
		h.send(ctx, message.Chat.ID, "Please send your question as text.")
		return
	}
	h.handleQuestion(ctx, message)
}

func (h *QueryHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		h.send(ctx, chatID, startText)
	case "clear":
		st := h.states.Get(chatID)
		if st.SessionID != "" {
			if err := h.store.ClearSession(ctx, st.SessionID); err != nil {
				ctxzap.Warn(ctx, "failed to clear session", zap.Error(err))
			}
		}
		h.states.ClearSession(chatID)
		h.send(ctx, chatID, "Conversation cleared. Ask me a new question.")
	case "language":
		arg := entity.QueryLanguage(strings.TrimSpace(message.CommandArguments()))
		if err := arg.Validate(); err != nil {
			h.send(ctx, chatID, "Usage: /language en or /language hi")
			return
		}
		h.states.SetLanguage(chatID, arg)
		h.send(ctx, chatID, "Language set to "+string(arg)+".")
	default:
		h.send(ctx, chatID, "Unknown command. Send /help for the command list.")
	}
}

func (h *QueryHandler) handleQuestion(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	st := h.states.Get(chatID)

	if st.SessionID == "" {
		sessionID, err := h.store.CreateSession(ctx)
		if err != nil {
			ctxzap.Error(ctx, "failed to create session", zap.Error(err))
			h.send(ctx, chatID, "Something went wrong. Please try again.")
			return
		}
		h.states.SetSession(chatID, sessionID)
		st.SessionID = sessionID
	}

	// Typing indicator while generation runs.
	if _, err := h.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		ctxzap.Debug(ctx, "failed to send typing action", zap.Error(err))
	}

	history, err := h.store.GetHistory(ctx, st.SessionID, historyWindow)
	if err != nil {
		ctxzap.Warn(ctx, "failed to load history", zap.Error(err))
	}

	answer := h.queries.Answer(ctx, entity.QueryRequest{
		Query:     message.Text,
		Language:  st.Language,
		SessionID: st.SessionID,
	}, history)

	if err := h.store.AddMessage(ctx, st.SessionID, entity.RoleUser, message.Text); err != nil {
		ctxzap.Warn(ctx, "failed to record user message", zap.Error(err))
	} else if err := h.store.AddMessage(ctx, st.SessionID, entity.RoleAssistant, answer.Answer); err != nil {
		ctxzap.Warn(ctx, "failed to record assistant message", zap.Error(err))
	}

	h.send(ctx, chatID, renderAnswer(answer))
}

// renderAnswer flattens the structured answer into a Telegram message.
func renderAnswer(answer *entity.StructuredAnswer) string {
	var sb strings.Builder
	sb.WriteString(answer.Answer)

	if len(answer.Citations) > 0 {
		sb.WriteString("\n\nSources:")
		for _, c := range answer.Citations {
			sb.WriteString("\n• " + c.Source)
			if c.Section != "" {
				sb.WriteString(", " + c.Section)
			}
		}
	}

	if len(answer.RelatedJudgments) > 0 {
		sb.WriteString("\n\nRelated judgments:")
		for _, j := range answer.RelatedJudgments {
			sb.WriteString("\n• " + j.Title)
		}
	}

	sb.WriteString("\n\n" + answer.Disclaimer)
	return sb.String()
}

func (h *QueryHandler) send(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
