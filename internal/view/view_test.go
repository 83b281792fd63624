package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/models"
	"github.com/apexlabs/apex-protocol/internal/session"
)

func newState(t *testing.T, ideas ...models.Idea) *session.State {
	t.Helper()
	st := session.New("test", nil, zap.NewNop())
	st.ReplaceIdeas(context.Background(), ideas)
	return st
}

func TestIdeaList(t *testing.T) {
	st := newState(t,
		models.Idea{ID: 1, Name: "AdminAI", Tagline: "Life Admin Automation", Valuation: "$1.2B"},
		models.Idea{ID: 2, Name: "LegacyVault", Tagline: "Digital Estate Planning", Valuation: "$850M"},
	)
	st.SetActive(2)

	rows := IdeaList(st)
	require.Len(t, rows, 2)
	assert.Equal(t, "AdminAI", rows[0].Name)
	assert.False(t, rows[0].Active)
	assert.True(t, rows[1].Active)
	assert.Equal(t, "$850M", rows[1].Valuation)
}

func TestDetail(t *testing.T) {
	idea := models.Idea{
		ID: 1, Name: "AdminAI",
		Agony: "a", Solution: "s", Moat: "m", Revenue: "r", WhyNow: "w",
		Blueprint: []string{"Phase 1"},
	}
	st := newState(t, idea)

	_, ok := Detail(st)
	assert.False(t, ok, "no detail without a selection")

	st.SetActive(1)
	detail, ok := Detail(st)
	require.True(t, ok)
	assert.Equal(t, "AdminAI", detail.Idea.Name)
	assert.Equal(t, "a", detail.Profile.Agony)
	assert.Equal(t, "w", detail.Profile.WhyNow)
	assert.Equal(t, []string{"Phase 1"}, detail.Blueprint)
}

func TestSnapshot(t *testing.T) {
	st := newState(t, models.Idea{ID: 1, Name: "AdminAI"})
	st.SetAgent("beta")
	st.AppendChat("hello", "user", "")

	sess := Snapshot(st)
	require.Len(t, sess.Ideas, 1)
	assert.Nil(t, sess.Detail)
	assert.Equal(t, "beta", sess.SelectedAgent.ID)
	require.Len(t, sess.ChatHistory, 1)

	st.SetActive(1)
	sess = Snapshot(st)
	require.NotNil(t, sess.Detail)
	assert.Equal(t, 1, sess.Detail.Idea.ID)
}

func TestRoster(t *testing.T) {
	roster := Roster()
	require.Len(t, roster, 6)
	assert.Equal(t, models.DefaultAgentID, roster[0].ID)
}
