// Package view projects session state into rendering-agnostic view models.
// Both presentation targets (desktop and mobile clients) consume these
// shapes; neither gets its own projection logic.
package view

import (
	"github.com/apexlabs/apex-protocol/internal/models"
	"github.com/apexlabs/apex-protocol/internal/session"
)

// IdeaSummary is one row of the idea list, in display rank order.
type IdeaSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Valuation string `json:"valuation"`
	Active    bool   `json:"active"`
}

// IdeaDetail is the detail pane for the active idea, split into the tabs
// the clients render.
type IdeaDetail struct {
	Idea      models.Idea `json:"idea"`
	Profile   ProfileTab  `json:"profile"`
	Blueprint []string    `json:"blueprint"`
}

// ProfileTab groups the narrative fields of an idea.
type ProfileTab struct {
	Agony    string `json:"agony"`
	Solution string `json:"solution"`
	Moat     string `json:"moat"`
	Revenue  string `json:"revenue"`
	WhyNow   string `json:"whynow"`
}

// Session is the full client-facing projection of session state.
type Session struct {
	Ideas         []IdeaSummary        `json:"ideas"`
	Detail        *IdeaDetail          `json:"detail,omitempty"`
	SelectedAgent models.Agent         `json:"selectedAgent"`
	ChatHistory   []models.ChatMessage `json:"chatHistory"`
}

// IdeaList projects the current idea list into summary rows.
func IdeaList(st *session.State) []IdeaSummary {
	active, hasActive := st.Active()
	ideas := st.Ideas()

	out := make([]IdeaSummary, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, IdeaSummary{
			ID:        idea.ID,
			Name:      idea.Name,
			Tagline:   idea.Tagline,
			Valuation: idea.Valuation,
			Active:    hasActive && idea.ID == active.ID,
		})
	}
	return out
}

// Detail projects the active idea, when one is selected.
func Detail(st *session.State) (IdeaDetail, bool) {
	idea, ok := st.Active()
	if !ok {
		return IdeaDetail{}, false
	}
	return IdeaDetail{
		Idea: idea,
		Profile: ProfileTab{
			Agony:    idea.Agony,
			Solution: idea.Solution,
			Moat:     idea.Moat,
			Revenue:  idea.Revenue,
			WhyNow:   idea.WhyNow,
		},
		Blueprint: idea.Blueprint,
	}, true
}

// Snapshot assembles the complete session projection.
func Snapshot(st *session.State) Session {
	sess := Session{
		Ideas:         IdeaList(st),
		SelectedAgent: st.Agent(),
		ChatHistory:   st.ChatHistory(),
	}
	if detail, ok := Detail(st); ok {
		sess.Detail = &detail
	}
	return sess
}

// Roster returns the static agent roster for agent pickers.
func Roster() []models.Agent {
	return models.Agents
}
