package models

import "time"

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

type Customer struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type SupportTicket struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Status     string     `json:"status"`
	Subject    *string    `json:"subject"`
	CreatedAt  time.Time  `json:"created_at"`
	ClosedAt   *time.Time `json:"closed_at"`
}

// ChatContext is the commerce snapshot handed to the assistant. All fields
// are optional; missing pieces render as placeholders in the prompt.
type ChatContext struct {
	Products []Product       `json:"products"`
	Customer *Customer       `json:"customer"`
	Tickets  []SupportTicket `json:"tickets"`
}

// CustomerUpdate always carries all three keys, each independently nullable.
type CustomerUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

const (
	ActionNone         = "none"
	ActionCreateTicket = "create_ticket"
	ActionCloseTicket  = "close_ticket"
)

// AssistantReply is the fixed payload of the chat endpoint. Reply is never
// empty and Action is always one of the Action* tokens.
type AssistantReply struct {
	Reply          string         `json:"reply"`
	Action         string         `json:"action"`
	TicketSubject  *string        `json:"ticketSubject"`
	TicketID       *string        `json:"ticketId"`
	CustomerUpdate CustomerUpdate `json:"customerUpdate"`
}
