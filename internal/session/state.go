package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/models"
)

// State is the single mutable session: current idea list, active selection,
// chosen agent, chat transcript, credential. It is constructor-injected
// into every collaborator; there are no package-level globals.
//
// A mutex guards all fields. The source application was single-threaded,
// but HTTP handlers are not, and the external semantics (atomic list
// replacement, no partial merges) must hold either way.
type State struct {
	mu            sync.Mutex
	sessionID     string
	ideas         []models.Idea
	activeID      int
	hasActive     bool
	selectedAgent string
	chatHistory   []models.ChatMessage
	apiKey        string
	inflight      map[string]bool

	store  *Store
	logger *zap.Logger
}

// New creates an empty session. store may be nil, in which case persistence
// is skipped (used by tests and by degraded startup).
func New(sessionID string, store *Store, logger *zap.Logger) *State {
	return &State{
		sessionID:     sessionID,
		ideas:         []models.Idea{},
		selectedAgent: models.DefaultAgentID,
		inflight:      make(map[string]bool),
		store:         store,
		logger:        logger.With(zap.String("session", sessionID)),
	}
}

// ReplaceIdeas swaps in a new idea list atomically and persists a snapshot.
// The previous list is discarded wholesale; there is no merging. A snapshot
// write failure is logged and swallowed: content delivery never depends on
// the store being up.
func (s *State) ReplaceIdeas(ctx context.Context, ideas []models.Idea) {
	s.mu.Lock()
	s.ideas = make([]models.Idea, len(ideas))
	copy(s.ideas, ideas)
	if s.hasActive && !s.containsLocked(s.activeID) {
		s.hasActive = false
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// Ideas returns a copy of the current list in display order.
func (s *State) Ideas() []models.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Idea, len(s.ideas))
	copy(out, s.ideas)
	return out
}

// SetActive marks the idea with the given id as active. Ids not present in
// the current list are ignored; this never fails.
func (s *State) SetActive(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.containsLocked(id) {
		s.activeID = id
		s.hasActive = true
	}
}

// Active returns the currently selected idea, if any.
func (s *State) Active() (models.Idea, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasActive {
		return models.Idea{}, false
	}
	for _, idea := range s.ideas {
		if idea.ID == s.activeID {
			return idea, true
		}
	}
	return models.Idea{}, false
}

// IsActive reports whether id is still the active idea. Results of an
// in-flight call whose subject has been abandoned are dropped against this.
func (s *State) IsActive(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasActive && s.activeID == id
}

func (s *State) SetAgent(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedAgent = models.AgentByID(agentID).ID
}

func (s *State) Agent() models.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.AgentByID(s.selectedAgent)
}

// AppendChat records one transcript entry with the current timestamp.
func (s *State) AppendChat(message, role, agent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatHistory = append(s.chatHistory, models.ChatMessage{
		Message:   message,
		Role:      role,
		Agent:     agent,
		Timestamp: time.Now().UTC(),
	})
}

func (s *State) ChatHistory() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.chatHistory))
	copy(out, s.chatHistory)
	return out
}

func (s *State) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatHistory = nil
}

// SetAPIKey stores the credential and persists it under its own key.
func (s *State) SetAPIKey(ctx context.Context, key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.SaveCredential(ctx, s.sessionID, key); err != nil {
		s.logger.Warn("failed to persist credential", zap.Error(err))
	}
}

func (s *State) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// Snapshot captures the persistable state: ideas plus a timestamp.
func (s *State) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Persist writes the current snapshot to the store.
func (s *State) Persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.SaveSnapshot(ctx, s.sessionID, s.Snapshot())
}

// Restore loads the stored snapshot into this session. Missing or corrupt
// storage is not an error: the session degrades to an empty idea list and
// the caller triggers fallback loading. Returns whether a snapshot was
// applied.
func (s *State) Restore(ctx context.Context) bool {
	if s.store == nil {
		return false
	}

	snap, ok, err := s.store.LoadSnapshot(ctx, s.sessionID)
	if err != nil {
		s.logger.Warn("failed to restore session", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	key, err := s.store.LoadCredential(ctx, s.sessionID)
	if err != nil {
		s.logger.Warn("failed to restore credential", zap.Error(err))
	}

	s.mu.Lock()
	s.ideas = snap.Ideas
	s.hasActive = false
	if key != "" {
		s.apiKey = key
	}
	s.mu.Unlock()
	return true
}

// TryBegin claims the in-flight slot for an action ("ideas", "pitch", ...).
// It returns false while a previous call for the same action is pending, so
// the same trigger cannot re-enter.
func (s *State) TryBegin(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[action] {
		return false
	}
	s.inflight[action] = true
	return true
}

// End releases the in-flight slot claimed by TryBegin.
func (s *State) End(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, action)
}

func (s *State) containsLocked(id int) bool {
	for _, idea := range s.ideas {
		if idea.ID == id {
			return true
		}
	}
	return false
}

func (s *State) snapshotLocked() models.SessionSnapshot {
	ideas := make([]models.Idea, len(s.ideas))
	copy(ideas, s.ideas)
	return models.SessionSnapshot{
		Ideas:     ideas,
		Timestamp: time.Now().UTC(),
	}
}

func (s *State) persist(ctx context.Context, snap models.SessionSnapshot) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSnapshot(ctx, s.sessionID, snap); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}
