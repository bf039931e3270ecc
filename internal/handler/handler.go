// Package handler exposes the resolver as a JSON HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tangkhul/internal/domain"

	"go.uber.org/zap"
)

// translator is the resolver surface the handler needs
type translator interface {
	Resolve(text, sourceLang, targetLang string) (*domain.Result, error)
}

// requestLogger is the analytics surface the handler needs
type requestLogger interface {
	Log(rec *domain.RequestLog)
}

// pinger reports storage liveness for the health endpoint
type pinger interface {
	Ping() error
}

// Handler serves the translation API
type Handler struct {
	resolver  translator
	analytics requestLogger
	db        pinger
	logger    *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(resolver translator, analytics requestLogger, db pinger, logger *zap.Logger) *Handler {
	return &Handler{
		resolver:  resolver,
		analytics: analytics,
		db:        db,
		logger:    logger,
	}
}

// RegisterRoutes attaches all API routes to the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/translate", h.handleTranslate)
	mux.HandleFunc("/healthz", h.handleHealth)
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	UserID         string `json:"user_id,omitempty"`
}

type translateResponse struct {
	TranslatedText  string               `json:"translated_text"`
	ConfidenceScore int                  `json:"confidence_score"`
	Method          string               `json:"method"`
	Alternatives    []domain.Alternative `json:"alternatives,omitempty"`
	Metadata        map[string]any       `json:"metadata"`
	ResponseTimeMs  int64                `json:"response_time_ms"`
}

type errorResponse struct {
	Error       string               `json:"error"`
	Details     string               `json:"details,omitempty"`
	Suggestions []domain.Alternative `json:"suggestions,omitempty"`
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	start := time.Now()
	result, err := h.resolver.Resolve(req.Text, req.SourceLanguage, req.TargetLanguage)
	latency := time.Since(start).Milliseconds()

	rec := &domain.RequestLog{
		Query:          req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		LatencyMs:      latency,
		UserID:         req.UserID,
	}

	if err != nil {
		rec.Failed = true
		h.analytics.Log(rec)
		h.writeError(w, err)
		return
	}

	rec.Method = result.Method
	rec.Confidence = result.Confidence
	rec.CacheHit = result.Method == domain.MethodCacheHit
	h.analytics.Log(rec)

	writeJSON(w, http.StatusOK, translateResponse{
		TranslatedText:  result.TranslatedText,
		ConfidenceScore: result.Confidence,
		Method:          string(result.Method),
		Alternatives:    result.Alternatives,
		Metadata:        result.Metadata,
		ResponseTimeMs:  latency,
	})
}

// writeError maps the resolver's error taxonomy onto HTTP statuses. The UI
// relies on not-found staying distinguishable from infrastructure failures.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: vErr.Error()})
		return
	}

	if errors.Is(err, domain.ErrNoData) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrNoData.Error()})
		return
	}

	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       domain.ErrNotFound.Error(),
			Suggestions: nfErr.Suggestions,
		})
		return
	}

	if errors.Is(err, domain.ErrStorageUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: domain.ErrStorageUnavailable.Error()})
		return
	}

	// Log the detail server-side, return a generic message to the caller
	h.logger.Error("unexpected resolution error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
