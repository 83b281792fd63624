package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/metrics"
	"github.com/apexlabs/apex-protocol/internal/models"
	"github.com/apexlabs/apex-protocol/internal/notify"
	"github.com/apexlabs/apex-protocol/internal/session"
)

// IdeaSource generates startup ideas from user parameters.
type IdeaSource interface {
	Generate(ctx context.Context, domain, catalyst, risk string) ([]models.Idea, error)
}

// PitchSource generates a pitch deck for one idea.
type PitchSource interface {
	Generate(ctx context.Context, idea models.Idea) ([]models.Slide, error)
}

// ThreatSource generates threat scenarios for one idea.
type ThreatSource interface {
	Analyze(ctx context.Context, idea models.Idea) ([]models.ThreatScenario, error)
}

// ChatSource answers one chat message in an agent's voice.
type ChatSource interface {
	Reply(ctx context.Context, message, agentID string, idea models.Idea) (string, error)
}

// BatchArchive persists generated batches for later inspection.
type BatchArchive interface {
	Save(ctx context.Context, batch *models.IdeaBatch) error
	Recent(ctx context.Context, limit int) ([]*models.IdeaBatch, error)
}

type Server struct {
	ideas    IdeaSource
	pitch    PitchSource
	warRoom  ThreatSource
	chat     ChatSource
	state    *session.State
	archive  BatchArchive
	notifier *notify.Notifier
	logger   *zap.Logger
	mux      *http.ServeMux
}

func New(
	ideas IdeaSource,
	pitch PitchSource,
	warRoom ThreatSource,
	chat ChatSource,
	state *session.State,
	archive BatchArchive,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ideas:    ideas,
		pitch:    pitch,
		warRoom:  warRoom,
		chat:     chat,
		state:    state,
		archive:  archive,
		notifier: notifier,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/ideas/generate", s.handleGenerateIdeas)
	s.mux.HandleFunc("GET /api/ideas/fallback", s.handleFallbackIdeas)
	s.mux.HandleFunc("GET /api/ideas/history", s.handleIdeaHistory)
	s.mux.HandleFunc("POST /api/pitch/generate", s.handleGeneratePitch)
	s.mux.HandleFunc("POST /api/warroom/analyze", s.handleWarRoom)
	s.mux.HandleFunc("POST /api/chat/send", s.handleChat)

	s.mux.HandleFunc("GET /api/session", s.handleGetSession)
	s.mux.HandleFunc("PUT /api/session", s.handlePersistSession)
	s.mux.HandleFunc("POST /api/session/active", s.handleSetActive)
	s.mux.HandleFunc("POST /api/session/agent", s.handleSetAgent)
	s.mux.HandleFunc("DELETE /api/session/chat", s.handleClearChat)
	s.mux.HandleFunc("GET /api/agents", s.handleAgents)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) Handler() http.Handler {
	return s.withCORS(s.withLogging(s.mux))
}

// Start runs the HTTP server until ctx is cancelled, then drains gracefully.
func (s *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", zap.String("port", port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.New().String()

		next.ServeHTTP(rec, r)

		metrics.HTTPRequests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		s.logger.Info("request",
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
