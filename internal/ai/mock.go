package ai

import (
	"context"
	"fmt"

	"github.com/ishistore/backend/internal/utils"
)

// MockCompleter returns a deterministic, contract-shaped completion derived
// from the last user message. Used in tests and keyless local runs.
type MockCompleter struct {
	ModelVersion string
}

func (m MockCompleter) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	last := ""
	for _, msg := range messages {
		if msg.Role == RoleUser {
			last = msg.Content
		}
	}
	h := utils.HashStringToUint64(last)

	replies := []string{
		"Happy to help with that.",
		"Here is what I found in the catalog.",
		"Let me check your order for you.",
	}
	reply := replies[int(h)%len(replies)]

	return fmt.Sprintf(`{"reply":%q,"action":"none","ticketSubject":null,"ticketId":null,"customerUpdate":{"name":null,"email":null,"phone":null}}`, reply), nil
}
