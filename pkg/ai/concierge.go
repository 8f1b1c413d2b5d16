package ai

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
)

// Role identifies who spoke a turn of a conversation
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a concierge conversation
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

const (
	conciergeTemperature = 0.7
	conciergeTopP        = 0.95
	conciergeMaxTokens   = 600
)

// Concierge answers client questions in the boutique's voice
type Concierge struct {
	completer Completer
	logger    *zap.Logger
}

// NewConcierge builds a concierge. A nil completer makes every reply the fallback line.
func NewConcierge(completer Completer, logger *zap.Logger) *Concierge {
	return &Concierge{completer: completer, logger: logging.OrNop(logger).Named("concierge")}
}

// Reply sends the prior turns plus the new message and returns the reply text.
// It never fails: model errors become the in-persona fallback line.
func (c *Concierge) Reply(ctx context.Context, history []Turn, message string) string {
	if c.completer == nil || isNilCompleter(c.completer) {
		return ConciergeFallback
	}

	messages := make([]Message, 0, len(history)+1)
	for _, t := range history {
		role := RoleAssistant
		if t.Role == RoleUser {
			role = RoleUser
		}
		messages = append(messages, Message{Role: role, Text: t.Text})
	}
	messages = append(messages, Message{Role: RoleUser, Text: message})

	ctx, cancel := global.GetTimerFrom(ctx)
	defer cancel()

	reply, err := c.completer.Complete(ctx, CompletionRequest{
		System:      ConciergeSystemPrompt,
		Messages:    messages,
		Temperature: conciergeTemperature,
		TopP:        conciergeTopP,
		MaxTokens:   conciergeMaxTokens,
	})
	if errors.Is(err, ErrEmptyResponse) {
		return ConciergeEmptyReply
	}
	if err != nil {
		c.logger.Warn("concierge reply failed", zap.Error(err))
		return ConciergeFallback
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ConciergeEmptyReply
	}
	return reply
}

// isNilCompleter catches a typed nil *OpenAICompleter stored in the interface
func isNilCompleter(c Completer) bool {
	oc, ok := c.(*OpenAICompleter)
	return ok && oc == nil
}
