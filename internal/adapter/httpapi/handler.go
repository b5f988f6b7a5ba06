package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"code-darpan/internal/common"
	"code-darpan/internal/domain"

	"github.com/rs/cors"
	logger "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// DefaultOrigins are the local development front-ends allowed by CORS.
var DefaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// Analyzer is what the handler needs from the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*domain.Report, error)
	Recent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error)
}

// Handler serves the HTTP API.
type Handler struct {
	svc     Analyzer
	origins []string
}

// NewHandler creates a Handler. Empty origins fall back to DefaultOrigins.
func NewHandler(svc Analyzer, origins []string) *Handler {
	if len(origins) == 0 {
		origins = DefaultOrigins
	}
	return &Handler{svc: svc, origins: origins}
}

// Routes returns the full handler chain: access log, CORS, routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", h.analyze)
	mux.HandleFunc("GET /analyses", h.recent)
	mux.HandleFunc("GET /healthz", h.health)

	c := cors.New(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   allMethods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return accessLog(c.Handler(mux))
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type recentResponse struct {
	Analyses []*domain.AnalysisRecord `json:"analyses"`
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return
	}

	report, err := h.svc.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid limit"})
			return
		}
		limit = n
	}

	records, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*domain.AnalysisRecord{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Analyses: records})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch common.CodeOf(err) {
	case common.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case common.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && !errors.Is(err, context.Canceled) {
		logger.Errorf("❌ request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Detail: common.MessageOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warnf("failed to write response: %v", err)
	}
}
