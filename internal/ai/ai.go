package ai

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces one raw completion for an ordered conversation.
// Implementations own transport, timeouts, and generation settings; the
// returned text carries no structural guarantees.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
