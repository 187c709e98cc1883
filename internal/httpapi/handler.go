// Package httpapi exposes the assist pipeline over REST. The wider eNabha
// backend (bookings, health records, pharmacy directory) lives behind the
// managed platform; only the AI assist surface is served here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/enabha/assist/internal/assist"
	"github.com/enabha/assist/internal/domain"
	"github.com/enabha/assist/internal/server"
	"github.com/enabha/assist/internal/storage"
)

// Handler serves the assist endpoints.
type Handler struct {
	analyzer *assist.Analyzer
	store    storage.AnalysisStore
	logger   *slog.Logger
}

// NewHandler creates a handler over the analyzer and store.
func NewHandler(analyzer *assist.Analyzer, store storage.AnalysisStore, logger *slog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
	}
}

// Register mounts the assist routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/v1/symptoms/analyze", h.handleAnalyze)
	r.Get("/v1/symptoms/analyses", h.handleListAnalyses)
	r.Get("/v1/symptoms/analyses/{id}", h.handleGetAnalysis)
	r.Post("/v1/wellness-guide", h.handleWellnessGuide)
	r.Post("/v1/specialists", h.handleSpecialists)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	ID string `json:"id"`
	domain.SymptomAnalysis
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("request body must be JSON with a text field").Wrap(err))
		return
	}
	if req.Text == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("text must not be empty"))
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.AddLogField(r.Context(), "detected_language", analysis.DetectedLanguage)

	rec := &storage.AnalysisRecord{
		ID:                 uuid.New().String(),
		OriginalText:       analysis.OriginalText,
		TranslatedText:     analysis.TranslatedText,
		DetectedLanguage:   analysis.DetectedLanguage,
		Analysis:           analysis.Analysis,
		TranslatedAnalysis: analysis.TranslatedAnalysis,
		CreatedAt:          time.Now().UTC(),
	}
	if err := h.store.SaveAnalysis(r.Context(), rec); err != nil {
		// The analysis succeeded; losing the history entry should not turn
		// the whole request into a failure.
		server.AddError(r.Context(), err)
		h.logger.Error("failed to persist analysis", slog.String("error", err.Error()))
	}

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		ID:              rec.ID,
		SymptomAnalysis: *analysis,
		CreatedAt:       rec.CreatedAt,
	})
}

func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, r, domain.ErrInvalidRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	recs, err := h.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*storage.AnalysisRecord{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"analyses": recs})
}

func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetAnalysis(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, r, domain.ErrNotFound("no analysis with id "+id))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

type contentRequest struct {
	Symptoms string `json:"symptoms"`
	Language string `json:"language"`
}

func (cr *contentRequest) validate() error {
	if cr.Symptoms == "" {
		return domain.ErrInvalidRequest("symptoms must not be empty")
	}
	if cr.Language == "" {
		return domain.ErrInvalidRequest("language must not be empty")
	}
	return nil
}

func (h *Handler) handleWellnessGuide(w http.ResponseWriter, r *http.Request) {
	h.handleContent(w, r, h.analyzer.WellnessGuide)
}

func (h *Handler) handleSpecialists(w http.ResponseWriter, r *http.Request) {
	h.handleContent(w, r, h.analyzer.SuggestSpecialists)
}

func (h *Handler) handleContent(w http.ResponseWriter, r *http.Request,
	generate func(ctx context.Context, symptoms, language string) (*domain.GeneratedContent, error)) {

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("request body must be JSON").Wrap(err))
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	content, err := generate(r.Context(), req.Symptoms, req.Language)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, content)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError maps an error to its HTTP status and a JSON error body. The UI
// shows Message and keeps technical detail behind a disclosure, so both are
// included.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	server.AddError(r.Context(), err)

	status := http.StatusInternalServerError
	errType := domain.ErrorTypeServer
	message := "internal error"

	var ae *domain.AssistError
	if errors.As(err, &ae) {
		status = ae.HTTPStatusCode()
		errType = ae.Type
		message = ae.Message
	}

	h.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": message,
			"detail":  err.Error(),
		},
	})
}
