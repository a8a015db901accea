package questions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/quizforge/backend/internal/cache"
	"github.com/quizforge/backend/internal/models"
)

type Handler struct {
	service *Service
	cache   cache.GenerationCache // nil disables response caching
}

func NewHandler(service *Service, genCache cache.GenerationCache) *Handler {
	return &Handler{service: service, cache: genCache}
}

// Generate handles POST /api/v1/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	for _, t := range req.Targets {
		if !models.ValidKinds[models.QuestionKind(t)] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "targets must be a subset of 'mcq', 'cloze', 'short_answer'"})
			return
		}
	}

	format := strings.ToLower(req.OutputFormat)
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "text" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "output_format must be 'json' or 'text'"})
		return
	}

	// Cached responses are stored as marshaled JSON, so only that format can
	// be served from cache.
	if h.cache != nil && format == "json" {
		if body, err := h.cache.Get(r.Context(), req); err == nil && body != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNoSentences) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(RenderText(resp)))
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to encode response"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), req, body); err != nil {
			log.Printf("WARNING: failed to cache generation response: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ListBatches handles GET /api/v1/batches.
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 20)
	offset := intQueryParam(query, "offset", 0)

	batches, err := h.service.ListBatches(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list batches"})
		return
	}

	if batches == nil {
		batches = []models.BatchRecord{}
	}
	writeJSON(w, http.StatusOK, batches)
}

// GetBatchQuestions handles GET /api/v1/batches/{id}/questions.
func (h *Handler) GetBatchQuestions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid batch ID"})
		return
	}

	questions, err := h.service.GetBatchQuestions(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load batch questions"})
		return
	}

	if questions == nil {
		questions = []models.ArchivedQuestion{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func intQueryParam(query url.Values, key string, fallback int) int {
	if raw := query.Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
