package generators

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/gemini"
	"github.com/apexlabs/apex-protocol/internal/models"
)

const pitchPromptTemplate = `Create a professional 10-slide VC pitch deck outline for the startup "%s".

CONTEXT:
- Problem: %s
- Solution: %s
- Business Model: %s
- Market Timing: %s
- Competitive Advantage: %s
- Valuation Target: %s

Generate a structured pitch deck with these slides:
1. Problem (the pain point)
2. Solution (your product)
3. Market Size (TAM/SAM/SOM)
4. Product/Demo (how it works)
5. Business Model (revenue streams)
6. Go-to-Market (customer acquisition)
7. Competition (competitive landscape)
8. Traction/Milestones (if early stage, show roadmap)
9. Team (founder strengths)
10. The Ask (funding amount and use of funds)

Return JSON array:
[
  {
    "title": "Slide Title",
    "bullets": ["Key point 1", "Key point 2", "Key point 3"]
  }
]

Make each slide concise, compelling, and VC-ready. Use specific numbers and metrics where possible.`

type PitchGenerator struct {
	llm    Completer
	logger *zap.Logger
}

func NewPitchGenerator(llm Completer, logger *zap.Logger) *PitchGenerator {
	return &PitchGenerator{
		llm:    llm,
		logger: logger.With(zap.String("generator", "pitch")),
	}
}

// Generate returns the slide deck for one idea. The slide count is up to
// the model; callers may only rely on the deck being non-empty with every
// slide carrying at least one bullet.
func (g *PitchGenerator) Generate(ctx context.Context, idea models.Idea) ([]models.Slide, error) {
	if idea.Name == "" {
		return nil, &ValidationError{Reason: "idea context is required"}
	}

	prompt := fmt.Sprintf(pitchPromptTemplate,
		idea.Name,
		idea.Agony,
		idea.Solution,
		idea.Revenue,
		idea.WhyNow,
		idea.Moat,
		idea.Valuation,
	)

	responseText, err := g.llm.Complete(ctx, prompt, 0.6)
	if err != nil {
		return nil, err
	}

	var slides []models.Slide
	if err := gemini.ParseStructured(responseText, &slides); err != nil {
		return nil, err
	}

	deck := make([]models.Slide, 0, len(slides))
	for _, s := range slides {
		if s.Title == "" || len(s.Bullets) == 0 {
			continue
		}
		deck = append(deck, s)
	}
	if len(deck) == 0 {
		return nil, &ValidationError{Reason: "response has no usable slides"}
	}

	g.logger.Info("generated pitch deck",
		zap.String("idea", idea.Name),
		zap.Int("slides", len(deck)),
	)
	return deck, nil
}
