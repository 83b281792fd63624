package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Notifier posts ops notices to a Slack channel. It is entirely optional:
// with no token configured every method is a no-op, and delivery failures
// are logged, never propagated.
type Notifier struct {
	client  *slack.Client
	channel string
	logger  *zap.Logger
}

func New(token, channel string, logger *zap.Logger) *Notifier {
	n := &Notifier{
		channel: channel,
		logger:  logger,
	}
	if token != "" {
		n.client = slack.New(token)
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n.client != nil
}

// GenerationFallback reports that a generation request degraded to canned
// content.
func (n *Notifier) GenerationFallback(ctx context.Context, kind, reason string) {
	n.post(ctx, fmt.Sprintf(":warning: %s generation fell back to canned content: %s", kind, reason))
}

// BatchGenerated reports a successful live generation.
func (n *Notifier) BatchGenerated(ctx context.Context, domain string, count int) {
	n.post(ctx, fmt.Sprintf(":bulb: generated %d ideas for domain %q", count, domain))
}

func (n *Notifier) post(ctx context.Context, text string) {
	if n.client == nil {
		return
	}
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		n.logger.Warn("failed to post slack notice", zap.Error(err))
	}
}
