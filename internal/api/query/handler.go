package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/formatter"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/logger"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/response"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/validator"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/usecase/document"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	queries       QueryUsecase
	documents     DocumentUsecase
	store         ConversationStore
	validator     *validator.Validator
	factory       *formatter.Factory
	historyWindow int
}

func NewHandler(
	queries QueryUsecase,
	documents DocumentUsecase,
	store ConversationStore,
	v *validator.Validator,
	historyWindow int,
) *Handler {
	return &Handler{
		queries:       queries,
		documents:     documents,
		store:         store,
		validator:     v,
		factory:       formatter.NewFactory(),
		historyWindow: historyWindow,
	}
}

// Ask handles POST /query - answer a legal question
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req entity.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateQuery(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var history []entity.Message
	if req.SessionID != "" {
		ctx = logger.AddFields(ctx, zap.String("session_id", req.SessionID))

		var err error
		history, err = h.store.GetHistory(ctx, req.SessionID, h.historyWindow)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}
	}

	ctxzap.Info(ctx, "answering query",
		zap.String("language", string(req.Language)),
		zap.Bool("arguments_mode", req.ArgumentsMode),
		zap.Bool("analysis_mode", req.AnalysisMode),
	)

	answer := h.queries.Answer(ctx, req, history)

	if req.SessionID != "" {
		h.recordExchange(ctx, req.SessionID, req.Query, answer.Answer)
	}

	response.Success(w, toQueryResponse(answer, req.SessionID))
}

// recordExchange persists both sides of the turn. Persistence failure does
// not fail the request: the answer is already computed.
func (h *Handler) recordExchange(ctx context.Context, sessionID, query, answer string) {
	if err := h.store.AddMessage(ctx, sessionID, entity.RoleUser, query); err != nil {
		ctxzap.Warn(ctx, "failed to record user message", zap.Error(err))
		return
	}
	if err := h.store.AddMessage(ctx, sessionID, entity.RoleAssistant, answer); err != nil {
		ctxzap.Warn(ctx, "failed to record assistant message", zap.Error(err))
	}
}

// Summarize handles POST /summarize - summarize an uploaded document
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Summarize")

	text, ok := h.readUpload(ctx, w, r)
	if !ok {
		return
	}

	summary, err := h.documents.Summarize(ctx, text)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document summarized")
	response.Success(w, SummarizeResponse{Summary: summary})
}

// Compare handles POST /compare - compare two legal texts
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Compare")

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TextA == "" || req.TextB == "" {
		response.Error(w, http.StatusBadRequest, "both text_a and text_b are required")
		return
	}

	comparison, err := h.documents.Compare(ctx, req.TextA, req.TextB)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "documents compared")
	response.Success(w, CompareResponse{Comparison: comparison})
}

// Export handles POST /export - download content as md, pdf or docx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		response.Error(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.Title == "" {
		req.Title = "Legal Compass Export"
	}
	if req.Format == "" {
		req.Format = entity.FormatMarkdown
	}
	if err := h.validator.ValidateExportFormat(req.Format); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	fmtr, err := h.factory.Create(req.Format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		response.Error(w, http.StatusNotImplemented, "format not implemented")
		return
	}

	data, err := fmtr.Format(req.Title, req.Content)
	if err != nil {
		ctxzap.Error(ctx, "failed to format export", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format export")
		return
	}

	ctxzap.Info(ctx, "export formatted", zap.String("format", string(req.Format)))
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"export%s\"", fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// readUpload extracts the text of the "file" multipart field, or the raw
// body for text/plain requests.
func (h *Handler) readUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	var (
		data     []byte
		filename string
	)

	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, header, err := r.FormFile("file")
		if err != nil {
			ctxzap.Error(ctx, "missing file field", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "file field is required")
			return "", false
		}
		defer file.Close()

		data, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			ctxzap.Error(ctx, "failed to read upload", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "failed to read upload")
			return "", false
		}
		filename = header.Filename
	} else {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil || len(body) == 0 {
			response.Error(w, http.StatusBadRequest, "request body is required")
			return "", false
		}
		data = body
		filename = "upload.txt"
	}

	text, err := document.ExtractText(filename, data)
	if err != nil {
		ctxzap.Error(ctx, "failed to extract text", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return text, true
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrUnsupportedFormat):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
