package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ishistore/backend/internal/ai"
	"github.com/ishistore/backend/internal/models"
)

type stubCompleter struct {
	text string
	err  error
}

func (s stubCompleter) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	return s.text, s.err
}

func TestRespondStructuredCompletion(t *testing.T) {
	svc := &Service{
		Completer: stubCompleter{text: "```json\n" + wellFormed + "\n```"},
		Logger:    zerolog.Nop(),
	}
	reply, err := svc.Respond(context.Background(), "hi", nil, models.ChatContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Reply != "Hello!" {
		t.Fatalf("unexpected reply: %q", reply.Reply)
	}
	if reply.Action != models.ActionNone {
		t.Fatalf("unexpected action: %q", reply.Action)
	}
}

func TestRespondDegradesOnProse(t *testing.T) {
	svc := &Service{
		Completer: stubCompleter{text: "I think your total is fine."},
		Logger:    zerolog.Nop(),
	}
	reply, err := svc.Respond(context.Background(), "hi", nil, models.ChatContext{})
	if err != nil {
		t.Fatalf("degradation must not surface as error: %v", err)
	}
	if reply.Reply != "I think your total is fine." {
		t.Fatalf("unexpected reply: %q", reply.Reply)
	}
	if reply.TicketSubject != nil || reply.TicketID != nil {
		t.Fatalf("expected nil ticket fields on degraded reply")
	}
}

func TestRespondUpstreamErrorPropagates(t *testing.T) {
	boom := errors.New("upstream down")
	svc := &Service{
		Completer: stubCompleter{err: boom},
		Logger:    zerolog.Nop(),
	}
	_, err := svc.Respond(context.Background(), "hi", nil, models.ChatContext{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestRespondNeverPanicsOnArbitraryText(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"{",
		"}{",
		`{"reply":}`,
		"``````",
		"```json```",
		`{"reply":"ok","action":"delete_everything"}`,
		"\x00\xff garbage bytes {\"reply\": \"ok\"}",
	}
	for _, in := range inputs {
		svc := &Service{Completer: stubCompleter{text: in}, Logger: zerolog.Nop()}
		reply, err := svc.Respond(context.Background(), "hi", nil, models.ChatContext{})
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", in, err)
		}
		if reply.Reply == "" {
			t.Fatalf("input %q: reply must never be empty", in)
		}
		if reply.Action != models.ActionNone && reply.Action != models.ActionCreateTicket && reply.Action != models.ActionCloseTicket {
			t.Fatalf("input %q: action outside allow-list: %q", in, reply.Action)
		}
	}
}
