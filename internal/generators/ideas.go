package generators

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/gemini"
	"github.com/apexlabs/apex-protocol/internal/models"
)

// Risk profiles accepted by the idea generator. Anything else is coerced to
// RiskBalanced before the prompt is built.
const (
	RiskSafe     = "safe"
	RiskBalanced = "balanced"
	RiskMoonshot = "moonshot"
)

const ideaPromptTemplate = `You are an expert startup advisor and venture analyst. Generate 6 detailed, realistic startup ideas for the "%s" domain.

CONSTRAINTS:
- Innovation Catalyst: %s
- Risk Profile: %s
- Ideas must be novel, technically feasible, and have clear market potential
- Focus on real pain points and viable business models

RISK PROFILE GUIDELINES:
- "safe": Proven business models, low technical risk, incremental innovation
- "balanced": Mix of proven and novel approaches, moderate technical complexity
- "moonshot": Breakthrough technology, high technical risk, paradigm-shifting potential

Return a JSON object with this exact structure:
{
  "ideas": [
    {
      "id": 1,
      "name": "Startup Name (2-3 words)",
      "tagline": "One-sentence value proposition",
      "agony": "Detailed description of the painful problem this solves (2-3 sentences)",
      "solution": "How this startup solves the problem with specific technology/approach (3-4 sentences)",
      "moat": "Defensible competitive advantage and barriers to entry (2-3 sentences)",
      "revenue": "Clear revenue model with pricing strategy (2-3 sentences)",
      "whynow": "Why this is the right time for this solution - market timing, technology readiness, regulatory environment (2-3 sentences)",
      "valuation": "$XM" or "$XB" (realistic 5-year projection),
      "blueprint": [
        "Phase 1: Detailed first step with specific deliverables",
        "Phase 2: Detailed second step with specific deliverables",
        "Phase 3: Detailed third step with specific deliverables",
        "Phase 4: Detailed fourth step with specific deliverables"
      ]
    }
  ]
}

Make each idea substantive, specific, and actionable. Use real market data and trends where applicable.`

type IdeaGenerator struct {
	llm    Completer
	logger *zap.Logger
}

func NewIdeaGenerator(llm Completer, logger *zap.Logger) *IdeaGenerator {
	return &IdeaGenerator{
		llm:    llm,
		logger: logger.With(zap.String("generator", "ideas")),
	}
}

// rawIdea tolerates a blueprint of any JSON type; everything the model
// returns that is not a string list is discarded during normalization.
type rawIdea struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Tagline   string          `json:"tagline"`
	Agony     string          `json:"agony"`
	Solution  string          `json:"solution"`
	Moat      string          `json:"moat"`
	Revenue   string          `json:"revenue"`
	WhyNow    string          `json:"whynow"`
	Valuation string          `json:"valuation"`
	Blueprint json.RawMessage `json:"blueprint"`
}

type ideasPayload struct {
	Ideas []rawIdea `json:"ideas"`
}

// Generate builds one prompt from the user parameters, calls the gateway
// and returns the normalized idea list. Failures propagate so the HTTP
// boundary can substitute the canned fallback set.
func (g *IdeaGenerator) Generate(ctx context.Context, domain, catalyst, risk string) ([]models.Idea, error) {
	if domain == "" {
		return nil, &ValidationError{Reason: "domain is required"}
	}
	if catalyst == "" {
		catalyst = "None specified"
	}
	switch risk {
	case RiskSafe, RiskBalanced, RiskMoonshot:
	default:
		risk = RiskBalanced
	}

	prompt := fmt.Sprintf(ideaPromptTemplate, domain, catalyst, risk)

	responseText, err := g.llm.Complete(ctx, prompt, 0.8)
	if err != nil {
		return nil, err
	}

	var payload ideasPayload
	if err := gemini.ParseStructured(responseText, &payload); err != nil {
		return nil, err
	}

	if payload.Ideas == nil {
		return nil, &ValidationError{Reason: "response has no ideas list"}
	}
	if len(payload.Ideas) == 0 {
		return nil, &ValidationError{Reason: "response has an empty ideas list"}
	}

	ideas := normalizeIdeas(payload.Ideas)
	g.logger.Info("generated ideas",
		zap.String("domain", domain),
		zap.String("risk", risk),
		zap.Int("count", len(ideas)),
	)
	return ideas, nil
}

// normalizeIdeas runs unconditionally, even on well-formed responses, so
// every idea leaves this package satisfying the record invariant: all
// fields present, ids unique, blueprint a (possibly empty) list.
func normalizeIdeas(raw []rawIdea) []models.Idea {
	ideas := make([]models.Idea, 0, len(raw))
	used := make(map[int]bool, len(raw))

	for i, r := range raw {
		id := r.ID
		if id <= 0 || used[id] {
			id = i + 1
			for used[id] {
				id++
			}
		}
		used[id] = true

		idea := models.Idea{
			ID:        id,
			Name:      r.Name,
			Tagline:   r.Tagline,
			Agony:     r.Agony,
			Solution:  r.Solution,
			Moat:      r.Moat,
			Revenue:   r.Revenue,
			WhyNow:    r.WhyNow,
			Valuation: r.Valuation,
			Blueprint: parseBlueprint(r.Blueprint),
		}
		if idea.Name == "" {
			idea.Name = "Unnamed Startup"
		}
		if idea.WhyNow == "" {
			idea.WhyNow = "Market timing is favorable"
		}
		if idea.Valuation == "" {
			idea.Valuation = "$10M"
		}
		ideas = append(ideas, idea)
	}

	return ideas
}

func parseBlueprint(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var phases []string
	if err := json.Unmarshal(raw, &phases); err != nil || phases == nil {
		return []string{}
	}
	return phases
}
