package generators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/internal/gemini"
	"github.com/apexlabs/apex-protocol/internal/models"
)

// OfflineNotice is the fixed reply returned when no credential is
// configured. There is no canned answer for a free-form question, so chat
// degrades to telling the user why it cannot answer.
const OfflineNotice = "OFFLINE MODE: Please add API key in settings."

// ConnectionErrorReply is what the user sees when a configured upstream
// call fails mid-conversation.
const ConnectionErrorReply = "Connection Error."

const chatPromptTemplate = `You are %s, a %s in a council of AI advisors analyzing startup ideas.

PERSONA: You are %s.

STARTUP CONTEXT:
Name: %s
Solution: %s
Problem: %s
Revenue Model: %s

USER QUESTION: "%s"

Respond in character with a sharp, insightful answer (2-4 sentences). Be specific and actionable. %s`

type ChatGenerator struct {
	llm    Completer
	logger *zap.Logger
}

func NewChatGenerator(llm Completer, logger *zap.Logger) *ChatGenerator {
	return &ChatGenerator{
		llm:    llm,
		logger: logger.With(zap.String("generator", "chat")),
	}
}

// Reply answers one user message in the selected agent's voice. Each call
// is stateless from the gateway's perspective: only the active idea and the
// message go upstream, never the local chat history.
func (g *ChatGenerator) Reply(ctx context.Context, message, agentID string, idea models.Idea) (string, error) {
	if message == "" {
		return "", &ValidationError{Reason: "message is required"}
	}
	if idea.Name == "" {
		return "", &ValidationError{Reason: "idea context is required"}
	}

	// Short-circuit before any network activity.
	if !g.llm.Configured() {
		return OfflineNotice, nil
	}

	agent := models.AgentByID(agentID)

	closing := "Stay strictly in your role."
	if agent.ID == models.DefaultAgentID {
		closing = "Synthesize multiple viewpoints."
	}

	prompt := fmt.Sprintf(chatPromptTemplate,
		agent.Name,
		agent.Role,
		agent.Persona,
		idea.Name,
		idea.Solution,
		idea.Agony,
		idea.Revenue,
		message,
		closing,
	)

	responseText, err := g.llm.Complete(ctx, prompt, 0.7)
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return OfflineNotice, nil
		}
		return "", err
	}

	return strings.TrimSpace(responseText), nil
}
