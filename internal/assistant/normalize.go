package assistant

import (
	"strings"

	"github.com/ishistore/backend/internal/models"
)

// fallbackReply is used when neither the extracted object nor the raw
// completion text yields a usable reply.
const fallbackReply = "Sorry, I had trouble answering that. Could you rephrase?"

// Normalize converts whatever the extractor produced into a fully populated
// AssistantReply. It never fails: reply is never empty, action collapses to
// "none" unless it is exactly a recognized token, and customerUpdate is
// always materialized with all three keys.
func Normalize(candidate map[string]any, raw string) models.AssistantReply {
	out := models.AssistantReply{
		Reply:  strings.TrimSpace(raw),
		Action: models.ActionNone,
	}

	if reply, ok := candidate["reply"].(string); ok && strings.TrimSpace(reply) != "" {
		out.Reply = strings.TrimSpace(reply)
	}
	if out.Reply == "" {
		out.Reply = fallbackReply
	}

	// strict allow-list: unknown tokens must not trigger side effects downstream
	switch candidate["action"] {
	case models.ActionCreateTicket:
		out.Action = models.ActionCreateTicket
	case models.ActionCloseTicket:
		out.Action = models.ActionCloseTicket
	}

	if subject, ok := candidate["ticketSubject"].(string); ok {
		out.TicketSubject = &subject
	}
	if id, ok := candidate["ticketId"].(string); ok {
		out.TicketID = &id
	}

	if update, ok := candidate["customerUpdate"].(map[string]any); ok {
		if v, ok := update["name"].(string); ok {
			out.CustomerUpdate.Name = &v
		}
		if v, ok := update["email"].(string); ok {
			out.CustomerUpdate.Email = &v
		}
		if v, ok := update["phone"].(string); ok {
			out.CustomerUpdate.Phone = &v
		}
	}

	return out
}
