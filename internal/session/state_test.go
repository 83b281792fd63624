package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/models"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStoreFromClient(client)
	t.Cleanup(func() { store.Close() })
	return New("test", store, zap.NewNop())
}

func sampleIdeas() []models.Idea {
	return []models.Idea{
		{ID: 1, Name: "AdminAI"},
		{ID: 2, Name: "LegacyVault"},
		{ID: 3, Name: "DeepVax"},
	}
}

func TestState_ReplaceIdeasIsAtomic(t *testing.T) {
	st := newTestState(t)
	ctx := context.Background()

	st.ReplaceIdeas(ctx, sampleIdeas())
	assert.Len(t, st.Ideas(), 3)

	// No merging: the old list is gone wholesale.
	st.ReplaceIdeas(ctx, []models.Idea{{ID: 9, Name: "Fresh"}})
	ideas := st.Ideas()
	require.Len(t, ideas, 1)
	assert.Equal(t, "Fresh", ideas[0].Name)
}

func TestState_ReplaceIdeasClearsStaleActive(t *testing.T) {
	st := newTestState(t)
	ctx := context.Background()

	st.ReplaceIdeas(ctx, sampleIdeas())
	st.SetActive(2)
	require.True(t, st.IsActive(2))

	st.ReplaceIdeas(ctx, []models.Idea{{ID: 9, Name: "Fresh"}})
	_, ok := st.Active()
	assert.False(t, ok, "active selection must not survive a list without its id")
}

func TestState_ReplaceIdeasKeepsActiveWhenStillPresent(t *testing.T) {
	st := newTestState(t)
	ctx := context.Background()

	st.ReplaceIdeas(ctx, sampleIdeas())
	st.SetActive(2)

	st.ReplaceIdeas(ctx, []models.Idea{{ID: 2, Name: "LegacyVault v2"}})
	active, ok := st.Active()
	require.True(t, ok)
	assert.Equal(t, "LegacyVault v2", active.Name)
}

func TestState_SetActiveUnknownIDIsNoOp(t *testing.T) {
	st := newTestState(t)
	st.ReplaceIdeas(context.Background(), sampleIdeas())

	st.SetActive(2)
	st.SetActive(99)

	active, ok := st.Active()
	require.True(t, ok)
	assert.Equal(t, 2, active.ID)
}

func TestState_IsActiveStaleGuard(t *testing.T) {
	st := newTestState(t)
	st.ReplaceIdeas(context.Background(), sampleIdeas())

	st.SetActive(1)
	assert.True(t, st.IsActive(1))
	assert.False(t, st.IsActive(2))

	st.SetActive(2)
	assert.False(t, st.IsActive(1), "result for the abandoned idea must be droppable")
}

func TestState_AgentSelection(t *testing.T) {
	st := newTestState(t)

	assert.Equal(t, models.DefaultAgentID, st.Agent().ID)

	st.SetAgent("beta")
	assert.Equal(t, "beta", st.Agent().ID)

	// Unknown ids resolve to the default agent.
	st.SetAgent("omega")
	assert.Equal(t, models.DefaultAgentID, st.Agent().ID)
}

func TestState_ChatTranscript(t *testing.T) {
	st := newTestState(t)

	st.AppendChat("hello", "user", "")
	st.AppendChat("hi there", "ai", "Beta")

	history := st.ChatHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "Beta", history[1].Agent)
	assert.False(t, history[0].Timestamp.IsZero())

	st.ClearChat()
	assert.Empty(t, st.ChatHistory())
}

func TestState_PersistRestoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStoreFromClient(client)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	first := New("shared", store, zap.NewNop())
	first.ReplaceIdeas(ctx, sampleIdeas())
	first.SetActive(2)
	first.SetAPIKey(ctx, "secret-key")
	require.NoError(t, first.Persist(ctx))

	second := New("shared", store, zap.NewNop())
	require.True(t, second.Restore(ctx))

	assert.Len(t, second.Ideas(), 3)
	assert.Equal(t, "secret-key", second.APIKey())

	// Selection is ephemeral; a restored session starts unselected.
	_, ok := second.Active()
	assert.False(t, ok)
}

func TestState_RestoreMissingSnapshot(t *testing.T) {
	st := newTestState(t)
	assert.False(t, st.Restore(context.Background()))
	assert.Empty(t, st.Ideas())
}

func TestState_RestoreCorruptSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStoreFromClient(client)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, mr.Set("apex:session:test", "garbage"))

	st := New("test", store, zap.NewNop())
	assert.False(t, st.Restore(context.Background()))
	assert.Empty(t, st.Ideas())
}

func TestState_NilStoreSkipsPersistence(t *testing.T) {
	st := New("test", nil, zap.NewNop())
	ctx := context.Background()

	st.ReplaceIdeas(ctx, sampleIdeas())
	assert.NoError(t, st.Persist(ctx))
	assert.False(t, st.Restore(ctx))
	assert.Len(t, st.Ideas(), 3)
}

func TestState_TryBeginEnd(t *testing.T) {
	st := newTestState(t)

	require.True(t, st.TryBegin("ideas"))
	assert.False(t, st.TryBegin("ideas"), "same action must not re-enter")
	assert.True(t, st.TryBegin("pitch"), "distinct actions run independently")

	st.End("ideas")
	assert.True(t, st.TryBegin("ideas"))
}

func TestState_IdeasReturnsCopy(t *testing.T) {
	st := newTestState(t)
	st.ReplaceIdeas(context.Background(), sampleIdeas())

	got := st.Ideas()
	got[0].Name = "Mutated"

	assert.Equal(t, "AdminAI", st.Ideas()[0].Name)
}
