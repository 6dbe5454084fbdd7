package assistant

import (
	"fmt"
	"strings"

	"github.com/ishistore/backend/internal/models"
)

// caps keep the prompt bounded no matter how much data the caller supplies
const (
	maxContextProducts = 20
	maxContextTickets  = 10
)

// BuildContextBlock renders the commerce snapshot as compact single-line
// entries. It never fails: missing fields degrade to empty strings and empty
// collections render a placeholder line so the prompt structure is stable.
func BuildContextBlock(chatCtx models.ChatContext) string {
	var sb strings.Builder

	sb.WriteString("PRODUCTS:\n")
	products := chatCtx.Products
	if len(products) > maxContextProducts {
		products = products[:maxContextProducts]
	}
	if len(products) == 0 {
		sb.WriteString("- none\n")
	}
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("- %s | %.2f | %s | id:%s\n",
			sanitizeLine(p.Name), p.Price, sanitizeLine(p.Category), sanitizeLine(p.ID)))
	}

	sb.WriteString("CUSTOMER:\n")
	if chatCtx.Customer == nil {
		sb.WriteString("- anonymous\n")
	} else {
		c := chatCtx.Customer
		sb.WriteString(fmt.Sprintf("- %s | %s | %s | id:%s\n",
			sanitizeLine(deref(c.Name)), sanitizeLine(deref(c.Email)), sanitizeLine(deref(c.Phone)), sanitizeLine(c.ID)))
	}

	sb.WriteString("TICKETS:\n")
	tickets := chatCtx.Tickets
	if len(tickets) > maxContextTickets {
		tickets = tickets[:maxContextTickets]
	}
	if len(tickets) == 0 {
		sb.WriteString("- none\n")
	}
	for _, t := range tickets {
		sb.WriteString(fmt.Sprintf("- %s | %s | id:%s\n",
			sanitizeLine(deref(t.Subject)), sanitizeLine(t.Status), sanitizeLine(t.ID)))
	}

	return sb.String()
}

func sanitizeLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
