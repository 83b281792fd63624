package generators

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/gemini"
	"github.com/apexlabs/apex-protocol/internal/models"
)

const warRoomPromptTemplate = `You are a red team advisor conducting adversarial analysis on a startup.

STARTUP PROFILE:
Name: %s
Solution: %s
Moat: %s
Revenue: %s

Generate 3 critical threat scenarios that could kill this startup:
1. COMPETITOR THREAT: A specific competitive move that could undermine the business
2. BLACK SWAN: An external shock or regulatory/market change that breaks the model
3. INTERNAL THREAT: A scaling, operational, or team issue that could implode the company

For each threat, provide a survival protocol - what the startup should do to mitigate or survive this scenario.

Return JSON:
{
  "scenarios": [
    {
      "type": "COMPETITOR" | "BLACK SWAN" | "INTERNAL",
      "title": "Specific threat title",
      "desc": "Detailed description of how this threat materializes (2-3 sentences)",
      "protocol": "Specific actionable survival strategy (2-3 sentences)"
    }
  ]
}

Be realistic and brutal. These should be genuine threats, not generic risks.`

// expectedScenarioCount is what the prompt asks for; responses with a
// different count are served anyway.
const expectedScenarioCount = 3

type WarRoomGenerator struct {
	llm    Completer
	logger *zap.Logger
}

func NewWarRoomGenerator(llm Completer, logger *zap.Logger) *WarRoomGenerator {
	return &WarRoomGenerator{
		llm:    llm,
		logger: logger.With(zap.String("generator", "warroom")),
	}
}

type scenariosPayload struct {
	Scenarios []models.ThreatScenario `json:"scenarios"`
}

// Analyze returns the threat scenarios for one idea.
func (g *WarRoomGenerator) Analyze(ctx context.Context, idea models.Idea) ([]models.ThreatScenario, error) {
	if idea.Name == "" {
		return nil, &ValidationError{Reason: "idea context is required"}
	}

	prompt := fmt.Sprintf(warRoomPromptTemplate,
		idea.Name,
		idea.Solution,
		idea.Moat,
		idea.Revenue,
	)

	responseText, err := g.llm.Complete(ctx, prompt, 0.8)
	if err != nil {
		return nil, err
	}

	var payload scenariosPayload
	if err := gemini.ParseStructured(responseText, &payload); err != nil {
		return nil, err
	}

	if len(payload.Scenarios) == 0 {
		return nil, &ValidationError{Reason: "response has no scenarios"}
	}
	if len(payload.Scenarios) != expectedScenarioCount {
		g.logger.Warn("unexpected scenario count",
			zap.String("idea", idea.Name),
			zap.Int("count", len(payload.Scenarios)),
		)
	}

	return payload.Scenarios, nil
}
