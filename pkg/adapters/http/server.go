// Package http exposes the tutor engine over a JSON API. Routing uses chi;
// metrics are served from a per-server Prometheus registry.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aprenda/tutor"
	"github.com/aprenda/tutor/internal/logging"
	"github.com/aprenda/tutor/pkg/domain"
)

// maxMessageBytes bounds a single student utterance.
const maxMessageBytes = 4096

// Server wires the engine to the router.
type Server struct {
	engine  *tutor.Engine
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *tutor.Engine, opts ...Option) http.Handler {
	server := &Server{
		engine:  engine,
		metrics: NewMetrics(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Post("/learning/turn", server.learningTurn)
	r.Post("/simulator/turn", server.simulatorTurn)
	r.Post("/validate", server.validate)
	r.Get("/topics", server.topics)
	r.Get("/healthz", server.health)
	r.Get("/info", server.info)
	r.Handle("/metrics", promhttp.HandlerFor(server.metrics.Registry(), promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LearningTurnRequest is the POST /learning/turn payload.
type LearningTurnRequest struct {
	SessionID string `json:"session_id"`
	TopicID   string `json:"topic_id"`
	Message   string `json:"message"`
}

// LearningTurnResponse is the POST /learning/turn reply.
type LearningTurnResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Phase     string `json:"phase"`
	StepIndex int    `json:"step_index"`
	Intent    string `json:"intent,omitempty"`
}

func (s *Server) learningTurn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body LearningTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("learning turn: invalid request body", "err", err)
		return
	}
	if body.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if len(body.Message) > maxMessageBytes {
		http.Error(w, "message too large", http.StatusRequestEntityTooLarge)
		return
	}

	reply, state, err := s.engine.LearningTurn(r.Context(), body.SessionID, body.TopicID, body.Message)
	if err != nil {
		s.metrics.observeTurn("learning", "error", "", time.Since(start).Seconds())
		if errors.Is(err, domain.ErrUnknownTopic) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error("learning turn failed", "session_id", body.SessionID, "err", err)
		return
	}
	s.metrics.observeTurn("learning", "ok", state.LastStudentIntent, time.Since(start).Seconds())

	writeJSON(w, s.logger, LearningTurnResponse{
		SessionID: body.SessionID,
		Reply:     reply,
		Phase:     string(state.Phase),
		StepIndex: state.StepIndex,
		Intent:    state.LastStudentIntent,
	})
}

// SimulatorTurnRequest is the POST /simulator/turn payload.
type SimulatorTurnRequest struct {
	SessionID string `json:"session_id"`
	Theme     string `json:"theme"`
	Message   string `json:"message"`
}

// SimulatorTurnResponse is the POST /simulator/turn reply.
type SimulatorTurnResponse struct {
	SessionID string       `json:"session_id"`
	Reply     string       `json:"reply"`
	Stage     int          `json:"stage"`
	StageName string       `json:"stage_name"`
	Slots     domain.Slots `json:"slots"`
	Intent    string       `json:"intent,omitempty"`
}

func (s *Server) simulatorTurn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body SimulatorTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("simulator turn: invalid request body", "err", err)
		return
	}
	if body.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if len(body.Message) > maxMessageBytes {
		http.Error(w, "message too large", http.StatusRequestEntityTooLarge)
		return
	}

	reply, state, err := s.engine.SimulatorTurn(r.Context(), body.SessionID, body.Theme, body.Message)
	if err != nil {
		s.metrics.observeTurn("simulator", "error", "", time.Since(start).Seconds())
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error("simulator turn failed", "session_id", body.SessionID, "err", err)
		return
	}
	s.metrics.observeTurn("simulator", "ok", string(state.LastUserIntent), time.Since(start).Seconds())

	writeJSON(w, s.logger, SimulatorTurnResponse{
		SessionID: body.SessionID,
		Reply:     reply,
		Stage:     int(state.Stage),
		StageName: state.Stage.String(),
		Slots:     state.Slots,
		Intent:    string(state.LastUserIntent),
	})
}

// ValidateRequest is the POST /validate payload.
type ValidateRequest struct {
	Text        string `json:"text"`
	TopicID     string `json:"topic_id"`
	IsSimulator bool   `json:"is_simulator"`
}

// ValidateResponse is the POST /validate reply.
type ValidateResponse struct {
	Text string `json:"text"`
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("validate: invalid request body", "err", err)
		return
	}

	text, err := s.engine.Validate(body.Text, body.TopicID, body.IsSimulator)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTopic) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error("validate failed", "err", err)
		return
	}

	writeJSON(w, s.logger, ValidateResponse{Text: text})
}

func (s *Server) topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, s.engine.Topics())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"app":     "tutor-http",
		"version": strings.TrimSpace(tutor.Version),
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
