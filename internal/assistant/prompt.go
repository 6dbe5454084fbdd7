package assistant

import (
	"fmt"
	"strings"

	"github.com/ishistore/backend/internal/ai"
)

// only the most recent turns fit in the prompt; older ones are dropped
const maxHistoryTurns = 20

const systemInstruction = `You are Ishi, the sales assistant of an online storefront.
You help customers find products, answer questions about prices and categories,
manage their support tickets, and update their contact details on request.
Be concise and friendly. Only reference products, prices, and tickets listed in
the CONTEXT section; never invent inventory or order data. If the customer asks
for something outside the store, politely decline.`

const outputContract = `Respond with a single JSON object and nothing else.
No markdown, no code fences, no extra keys, no commentary before or after.
The object must have exactly this shape:
{
  "reply": "<your message to the customer>",
  "action": "none" | "create_ticket" | "close_ticket",
  "ticketSubject": "<subject>" or null,
  "ticketId": "<id>" or null,
  "customerUpdate": { "name": "<name>" or null, "email": "<email>" or null, "phone": "<phone>" or null }
}
Use "create_ticket" with a ticketSubject when the customer reports a problem
that needs follow-up. Use "close_ticket" with a ticketId only for a ticket
listed in CONTEXT. Fill customerUpdate fields only when the customer
explicitly provides new contact details. Otherwise use "none" and nulls.`

// BuildMessages assembles the full conversation sent to the completion
// service. History is truncated to the most recent maxHistoryTurns entries in
// original order; the final turn folds instruction, contract, context, and the
// new user message into one block because the target API has no system
// channel in this integration.
func BuildMessages(contextBlock string, history []ai.ChatMessage, userMessage string) []ai.ChatMessage {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	out := make([]ai.ChatMessage, 0, len(history)+1)
	for _, h := range history {
		role := ai.RoleUser
		if h.Role == ai.RoleAssistant {
			role = ai.RoleAssistant
		}
		out = append(out, ai.ChatMessage{Role: role, Content: h.Content})
	}

	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(outputContract)
	sb.WriteString("\n\nCONTEXT:\n")
	sb.WriteString(contextBlock)
	sb.WriteString(fmt.Sprintf("\nCUSTOMER MESSAGE: %s", userMessage))

	out = append(out, ai.ChatMessage{Role: ai.RoleUser, Content: sb.String()})
	return out
}
