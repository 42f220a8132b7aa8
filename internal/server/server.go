package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/formpilot/internal/app"
	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/logging"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/page"
	"github.com/raysh454/formpilot/internal/policy"
	"github.com/raysh454/formpilot/internal/store"
)

// Server is the HTTP + WebSocket API surface for FormPilot — the popup/UI
// layer talks to the assistant exclusively through it.
type Server struct {
	cfg       Config
	assistant *app.Assistant
	st        *store.Store
	router    chi.Router
	upgrader  websocket.Upgrader
	logger    interfaces.Logger
}

// NewServer creates a new Server with its own Assistant and store.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	// Make sure storage root exists
	storageRoot, err := expandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	if err := os.MkdirAll(storageRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root directory: %w", err)
	}

	st, err := store.Open(filepath.Join(storageRoot, "formpilot.db"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	page.RegisterDefaultBackends()
	opener, err := page.NewOpener(cfg.AppConfig.PageCfg, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating page backend: %w", err)
	}

	assistant := app.NewAssistant(cfg.AppConfig, opener, st, st, st, logger)

	s := &Server{
		cfg:       cfg,
		assistant: assistant,
		st:        st,
		router:    chi.NewRouter(),
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Assistant returns the underlying assistant for advanced use (tests, etc.).
func (s *Server) Assistant() *app.Assistant {
	return s.assistant
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/scan", s.optionsHandler("POST"))
	r.Options("/apply", s.optionsHandler("POST"))
	r.Options("/profile", s.optionsHandler("GET, PUT"))
	r.Options("/profile/history", s.optionsHandler("GET"))
	r.Options("/settings", s.optionsHandler("GET, PUT"))
	r.Options("/audit", s.optionsHandler("GET"))
	r.Options("/policy/sensitive", s.optionsHandler("GET"))

	// Core operations
	r.Post("/scan", s.handleScan)
	r.Post("/apply", s.handleApply)

	// Profile and settings
	r.Get("/profile", s.handleGetProfile)
	r.Put("/profile", s.handleSetProfile)
	r.Get("/profile/history", s.handleProfileHistory)
	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handleSetSettings)

	// Audit log and policy introspection
	r.Get("/audit", s.handleAudit)
	r.Get("/policy/sensitive", s.handleSensitiveTypes)

	// WebSocket for streaming apply progress
	r.Get("/ws/apply", s.handleApplyWS)

	// API docs
	r.Get("/swagger/*", httpSwagger.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []interfaces.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, interfaces.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, interfaces.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the assistant and underlying resources.
func (s *Server) Close() {
	if s.assistant != nil {
		s.assistant.Close()
	}
	if s.st != nil {
		s.st.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleScan godoc
// @Summary Scan a page and return the fill plan
// @Accept json
// @Produce json
// @Param request body ScanRequest true "page to scan"
// @Success 200 {array} model.PlanItem
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /scan [post]
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var body ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	items, err := s.assistant.Scan(r.Context(), body.URL)
	if err != nil {
		s.logger.Warn("scanning page", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("scanned page",
		interfaces.Field{Key: "url", Value: body.URL},
		interfaces.Field{Key: "fields", Value: len(items)})
	writeJSON(w, http.StatusOK, items)
}

// handleApply godoc
// @Summary Apply approved fills to a page
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "page and approvals"
// @Success 200 {object} model.ApplyReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /apply [post]
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	report, err := s.assistant.ApplyPlan(r.Context(), body.URL, body.Approvals, nil)
	if err != nil {
		s.logger.Warn("applying plan", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGetProfile godoc
// @Summary Get the stored profile (defaults when unset)
// @Produce json
// @Success 200 {object} model.Profile
// @Failure 500 {object} ErrorResponse
// @Router /profile [get]
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.assistant.Profile(r.Context())
	if err != nil {
		s.logger.Warn("reading profile", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSetProfile godoc
// @Summary Replace the stored profile
// @Accept json
// @Param request body model.Profile true "profile values"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [put]
func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var p model.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.assistant.SetProfile(r.Context(), p); err != nil {
		s.logger.Warn("writing profile", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleProfileHistory godoc
// @Summary List recent profile edits, newest first
// @Produce json
// @Param limit query int false "max entries"
// @Success 200 {array} store.ProfileChange
// @Failure 500 {object} ErrorResponse
// @Router /profile/history [get]
func (s *Server) handleProfileHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20)
	changes, err := s.st.ProfileHistory(r.Context(), limit)
	if err != nil {
		s.logger.Warn("reading profile history", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, changes)
}

// handleGetSettings godoc
// @Summary Get the safety settings
// @Produce json
// @Success 200 {object} model.Settings
// @Failure 500 {object} ErrorResponse
// @Router /settings [get]
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.assistant.Settings(r.Context())
	if err != nil {
		s.logger.Warn("reading settings", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleSetSettings godoc
// @Summary Replace the safety settings
// @Accept json
// @Param request body model.Settings true "settings"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings [put]
func (s *Server) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	var st model.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.assistant.SetSettings(r.Context(), st); err != nil {
		s.logger.Warn("writing settings", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleAudit godoc
// @Summary List recent apply audit entries, newest first
// @Produce json
// @Param limit query int false "max entries"
// @Success 200 {array} model.AuditEntry
// @Failure 500 {object} ErrorResponse
// @Router /audit [get]
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, model.MaxAuditEntries)
	entries, err := s.assistant.Audit(r.Context(), limit)
	if err != nil {
		s.logger.Warn("reading audit log", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleSensitiveTypes godoc
// @Summary List the hard-blocked sensitive field types
// @Produce json
// @Success 200 {object} SensitiveTypesResponse
// @Router /policy/sensitive [get]
func (s *Server) handleSensitiveTypes(w http.ResponseWriter, r *http.Request) {
	types := policy.SensitiveTypes()
	out := make([]string, 0, len(types))
	for _, ft := range types {
		out = append(out, string(ft))
	}
	writeJSON(w, http.StatusOK, SensitiveTypesResponse{SensitiveTypes: out})
}

// handleApplyWS streams per-field apply results over a websocket: the
// client sends one ApplyRequest, receives one message per field, then a
// final ApplyReport.
func (s *Server) handleApplyWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", interfaces.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	var req ApplyRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: "invalid apply request"})
		return
	}
	if req.URL == "" {
		_ = conn.WriteJSON(ErrorResponse{Error: "missing url"})
		return
	}

	onItem := func(res model.ApplyResult) {
		_ = conn.WriteJSON(res)
	}

	report, err := s.assistant.ApplyPlan(r.Context(), req.URL, req.Approvals, onItem)
	if err != nil {
		s.logger.Warn("applying plan over websocket", interfaces.Field{Key: "error", Value: err.Error()})
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		return
	}
	_ = conn.WriteJSON(report)
}

func parseLimit(r *http.Request, def int) int {
	limit := def
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}
	return limit
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
