package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/generators"
	"github.com/apexlabs/apex-protocol/internal/metrics"
	"github.com/apexlabs/apex-protocol/internal/models"
	"github.com/apexlabs/apex-protocol/internal/view"
)

type generateIdeasRequest struct {
	Domain   string `json:"domain"`
	Catalyst string `json:"catalyst"`
	Risk     string `json:"risk"`
}

type ideasResponse struct {
	Ideas     []models.Idea `json:"ideas"`
	Fallback  bool          `json:"fallback,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// handleGenerateIdeas runs a full generation cycle. Upstream failure is
// never surfaced as an error status: the response downgrades to the canned
// set with fallback=true and the session still gets a complete idea list.
func (s *Server) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req generateIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Domain == "" {
		s.writeError(w, http.StatusBadRequest, "Domain is required")
		return
	}
	if req.Risk == "" {
		req.Risk = generators.RiskBalanced
	}

	if !s.state.TryBegin("ideas") {
		s.writeError(w, http.StatusConflict, "Idea generation already in progress")
		return
	}
	defer s.state.End("ideas")

	ctx := r.Context()
	start := time.Now()
	ideas, err := s.ideas.Generate(ctx, req.Domain, req.Catalyst, req.Risk)
	metrics.UpstreamDuration.WithLabelValues("ideas").Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("idea generation failed, serving fallback",
			zap.String("domain", req.Domain),
			zap.Error(err),
		)
		metrics.GenerationRequests.WithLabelValues("ideas", metrics.OutcomeFallback).Inc()
		s.notifier.GenerationFallback(ctx, "idea", err.Error())

		fallback := generators.FallbackIdeas()
		s.state.ReplaceIdeas(ctx, fallback)
		s.archiveBatch(models.NewIdeaBatch(req.Domain, req.Catalyst, req.Risk, true, fallback))

		s.writeJSON(w, http.StatusOK, ideasResponse{
			Ideas:     fallback,
			Fallback:  true,
			Message:   "Using fallback ideas due to API error",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	metrics.GenerationRequests.WithLabelValues("ideas", metrics.OutcomeLive).Inc()
	s.notifier.BatchGenerated(ctx, req.Domain, len(ideas))

	s.state.ReplaceIdeas(ctx, ideas)
	s.archiveBatch(models.NewIdeaBatch(req.Domain, req.Catalyst, req.Risk, false, ideas))

	s.writeJSON(w, http.StatusOK, ideasResponse{
		Ideas:     ideas,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleFallbackIdeas(w http.ResponseWriter, r *http.Request) {
	ideas := generators.FallbackIdeas()
	s.writeJSON(w, http.StatusOK, ideasResponse{
		Ideas:     ideas,
		Fallback:  true,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleIdeaHistory(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"batches": []any{}})
		return
	}
	batches, err := s.archive.Recent(r.Context(), 20)
	if err != nil {
		s.logger.Warn("failed to read batch archive", zap.Error(err))
		s.writeJSON(w, http.StatusOK, map[string]any{"batches": []any{}})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"batches": batches})
}

type ideaContextRequest struct {
	Idea models.Idea `json:"idea"`
}

type pitchResponse struct {
	Slides    []models.Slide `json:"slides"`
	Fallback  bool           `json:"fallback,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (s *Server) handleGeneratePitch(w http.ResponseWriter, r *http.Request) {
	var req ideaContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Idea.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Idea context required")
		return
	}

	if !s.state.TryBegin("pitch") {
		s.writeError(w, http.StatusConflict, "Pitch generation already in progress")
		return
	}
	defer s.state.End("pitch")

	ctx := r.Context()
	start := time.Now()
	slides, err := s.pitch.Generate(ctx, req.Idea)
	metrics.UpstreamDuration.WithLabelValues("pitch").Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("pitch generation failed, serving fallback",
			zap.String("idea", req.Idea.Name),
			zap.Error(err),
		)
		metrics.GenerationRequests.WithLabelValues("pitch", metrics.OutcomeFallback).Inc()
		s.notifier.GenerationFallback(ctx, "pitch", err.Error())

		s.writeJSON(w, http.StatusOK, pitchResponse{
			Slides:    generators.FallbackDeck(req.Idea),
			Fallback:  true,
			Message:   "Using template pitch deck",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	metrics.GenerationRequests.WithLabelValues("pitch", metrics.OutcomeLive).Inc()
	s.writeJSON(w, http.StatusOK, pitchResponse{
		Slides:    slides,
		Timestamp: time.Now().UTC(),
	})
}

type warRoomResponse struct {
	Scenarios []models.ThreatScenario `json:"scenarios"`
	Fallback  bool                    `json:"fallback,omitempty"`
	Message   string                  `json:"message,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

func (s *Server) handleWarRoom(w http.ResponseWriter, r *http.Request) {
	var req ideaContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Idea.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Idea context required")
		return
	}

	if !s.state.TryBegin("warroom") {
		s.writeError(w, http.StatusConflict, "War room analysis already in progress")
		return
	}
	defer s.state.End("warroom")

	ctx := r.Context()
	start := time.Now()
	scenarios, err := s.warRoom.Analyze(ctx, req.Idea)
	metrics.UpstreamDuration.WithLabelValues("warroom").Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("war room analysis failed, serving fallback",
			zap.String("idea", req.Idea.Name),
			zap.Error(err),
		)
		metrics.GenerationRequests.WithLabelValues("warroom", metrics.OutcomeFallback).Inc()
		s.notifier.GenerationFallback(ctx, "war room", err.Error())

		s.writeJSON(w, http.StatusOK, warRoomResponse{
			Scenarios: generators.FallbackScenarios(),
			Fallback:  true,
			Message:   "Using template threat scenarios",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	metrics.GenerationRequests.WithLabelValues("warroom", metrics.OutcomeLive).Inc()
	s.writeJSON(w, http.StatusOK, warRoomResponse{
		Scenarios: scenarios,
		Timestamp: time.Now().UTC(),
	})
}

type chatRequest struct {
	Message     string      `json:"message"`
	AgentID     string      `json:"agentId"`
	IdeaContext models.Idea `json:"ideaContext"`
}

type chatResponse struct {
	Response  string    `json:"response"`
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
}

// handleChat is the one surface where failure is user-visible: there is no
// canned reply for a free-form question, so a transport failure comes back
// as a literal connection-error message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || req.IdeaContext.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Message and idea context required")
		return
	}

	agent := models.AgentByID(req.AgentID)
	ctx := r.Context()

	s.state.AppendChat(req.Message, "user", "")

	start := time.Now()
	reply, err := s.chat.Reply(ctx, req.Message, req.AgentID, req.IdeaContext)
	metrics.UpstreamDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("chat reply failed", zap.String("agent", agent.ID), zap.Error(err))
		metrics.GenerationRequests.WithLabelValues("chat", metrics.OutcomeFallback).Inc()
		reply = generators.ConnectionErrorReply
	} else {
		metrics.GenerationRequests.WithLabelValues("chat", metrics.OutcomeLive).Inc()
	}

	// A reply for an idea the user has since navigated away from would be
	// confusing in the transcript; drop it there but still return it.
	if active, ok := s.state.Active(); !ok || active.ID == req.IdeaContext.ID {
		s.state.AppendChat(reply, "ai", agent.Name)
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		Response:  reply,
		Agent:     agent.Name,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, view.Snapshot(s.state))
}

func (s *Server) handlePersistSession(w http.ResponseWriter, r *http.Request) {
	if err := s.state.Persist(r.Context()); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to persist session")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"persisted": true, "timestamp": time.Now().UTC()})
}

type setActiveRequest struct {
	ID int `json:"id"`
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Unknown ids are a silent no-op.
	s.state.SetActive(req.ID)
	s.writeJSON(w, http.StatusOK, view.Snapshot(s.state))
}

type setAgentRequest struct {
	AgentID string `json:"agentId"`
}

func (s *Server) handleSetAgent(w http.ResponseWriter, r *http.Request) {
	var req setAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.state.SetAgent(req.AgentID)
	s.writeJSON(w, http.StatusOK, map[string]any{"selectedAgent": s.state.Agent()})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	s.state.ClearChat()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"agents": view.Roster()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// archiveBatch writes to the archive without blocking or failing the
// request.
func (s *Server) archiveBatch(batch *models.IdeaBatch) {
	if s.archive == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Save(ctx, batch); err != nil {
			s.logger.Warn("failed to archive batch",
				zap.String("domain", batch.Domain),
				zap.Error(err),
			)
		}
	}()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
