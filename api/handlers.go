package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/domain/label"
	appLogger "github.com/prasetyowira/mxlabel/infrastructure/logger"
	"github.com/prasetyowira/mxlabel/infrastructure/render"
)

// History pagination bounds
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// LabelService is the domain surface the API handlers depend on
type LabelService interface {
	GenerateLabel(ctx context.Context, rawURL string, variant label.Variant) (*label.Label, error)
	History(ctx context.Context, limit int) ([]label.JournalEntry, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service LabelService
}

// CreateLabelRequest is the request object for the label generation endpoint
type CreateLabelRequest struct {
	URL     string `json:"url"`
	Variant string `json:"variant,omitempty"`
}

// LabelResponse describes a generated label
type LabelResponse struct {
	Filename         string `json:"filename"`
	FontSize         int    `json:"font_size"`
	ContentFits      bool   `json:"content_fits"`
	PreviewAvailable bool   `json:"preview_available"`
	PreviewPNG       string `json:"preview_png,omitempty"`
}

// HistoryEventResponse is one journaled label generation event
type HistoryEventResponse struct {
	Kind       string    `json:"kind"`
	ResourceID string    `json:"resource_id"`
	Name       string    `json:"name"`
	Variant    string    `json:"variant"`
	Filename   string    `json:"filename"`
	FontSize   int       `json:"font_size"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse lists recent label generation events
type HistoryResponse struct {
	Events []HistoryEventResponse `json:"events"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service LabelService) *Handler {
	return &Handler{
		service: service,
	}
}

// statusForError maps label pipeline errors onto HTTP status codes
func statusForError(err error) int {
	var upstream *label.UpstreamError
	switch {
	case errors.Is(err, label.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &upstream), errors.Is(err, label.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, label.ErrEmptyPayload), errors.Is(err, label.ErrUnencodable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, render.ErrBackend):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// writeServiceError logs a pipeline failure and writes its mapped status
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	statusCode := statusForError(err)

	logFunc := appLogger.CtxError
	if statusCode < 500 {
		logFunc = appLogger.CtxWarn
	}
	logFunc(ctx, "Label pipeline failed", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIServiceError,
			Message: err.Error(),
			Type:    constant.ErrTypeAPI,
		},
		Data: map[string]interface{}{
			constant.DataStatus: statusCode,
		},
	})

	WriteJSONError(w, err.Error(), statusCode)
}

// labelParams extracts the resource URL and variant from a request's query
// string
func labelParams(r *http.Request) (string, label.Variant, error) {
	variant, err := label.ParseVariant(r.URL.Query().Get("variant"))
	if err != nil {
		return "", "", err
	}
	return r.URL.Query().Get("url"), variant, nil
}

// CreateLabel handles label generation, returning metadata and an inline
// preview
func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingCreateLabel, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateLabel,
	})

	var req CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateLabel,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	variant, err := label.ParseVariant(req.Variant)
	if err != nil {
		WriteJSONError(w, "Unknown label variant", http.StatusBadRequest)
		return
	}

	result, err := h.service.GenerateLabel(ctx, req.URL, variant)
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxCreateLabel, err)
		return
	}

	resp := LabelResponse{
		Filename:         result.Filename,
		FontSize:         result.FontSize,
		ContentFits:      result.ContentFits,
		PreviewAvailable: result.Preview != nil,
	}
	if result.Preview != nil {
		resp.PreviewPNG = base64.StdEncoding.EncodeToString(result.Preview)
	}

	appLogger.CtxInfo(ctx, "Label created successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateLabel,
		Data: map[string]interface{}{
			constant.DataFilename: result.Filename,
			constant.DataFontSize: result.FontSize,
		},
	})

	WriteJSON(w, resp, http.StatusCreated)
}

// DownloadDocument handles label generation served as a PDF attachment
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingDownload, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDownloadLabel,
	})

	rawURL, variant, err := labelParams(r)
	if err != nil {
		WriteJSONError(w, "Unknown label variant", http.StatusBadRequest)
		return
	}

	result, err := h.service.GenerateLabel(ctx, rawURL, variant)
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxDownloadLabel, err)
		return
	}

	appLogger.CtxInfo(ctx, "Serving label document", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDownloadLabel,
		Data: map[string]interface{}{
			constant.DataFilename: result.Filename,
			constant.DataSize:     len(result.Document.PDF),
		},
	})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Document.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Document.PDF)
}

// PreviewImage handles label generation served as the preview PNG
func (h *Handler) PreviewImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingPreview, appLogger.LoggerInfo{
		ContextFunction: constant.CtxPreviewLabel,
	})

	rawURL, variant, err := labelParams(r)
	if err != nil {
		WriteJSONError(w, "Unknown label variant", http.StatusBadRequest)
		return
	}

	result, err := h.service.GenerateLabel(ctx, rawURL, variant)
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxPreviewLabel, err)
		return
	}

	if result.Preview == nil {
		WriteJSONError(w, "Label preview could not be produced", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Preview)
}

// GetHistory handles retrieving recent label generation events
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingHistory, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGetHistory,
	})

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteJSONError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.service.History(ctx, limit)
	if err != nil {
		appLogger.CtxError(ctx, "Error retrieving label history", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGetHistory,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Failed to retrieve label history", http.StatusInternalServerError)
		return
	}

	resp := HistoryResponse{
		Events: make([]HistoryEventResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Events = append(resp.Events, HistoryEventResponse{
			Kind:       string(e.Kind),
			ResourceID: e.ResourceID,
			Name:       e.Name,
			Variant:    string(e.Variant),
			Filename:   e.Filename,
			FontSize:   e.FontSize,
			CreatedAt:  e.CreatedAt,
		})
	}

	WriteJSON(w, resp, http.StatusOK)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
