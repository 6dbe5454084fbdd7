package assistant

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ishistore/backend/internal/ai"
	"github.com/ishistore/backend/internal/models"
)

// Service runs the full assistant pipeline: assemble the prompt, call the
// completion service, then recover a structured reply from whatever came
// back. Only the completion call itself can fail; everything after it
// degrades instead of erroring, since user-facing chat must never hard-fail
// on a malformed model response.
type Service struct {
	Completer ai.Completer
	Logger    zerolog.Logger
}

func (s *Service) Respond(ctx context.Context, message string, history []ai.ChatMessage, chatCtx models.ChatContext) (models.AssistantReply, error) {
	contextBlock := BuildContextBlock(chatCtx)
	messages := BuildMessages(contextBlock, history, message)

	raw, err := s.Completer.Complete(ctx, messages)
	if err != nil {
		return models.AssistantReply{}, err
	}

	return s.parseCompletion(raw), nil
}

// parseCompletion turns raw completion text into a normalized reply and
// absorbs any panic from the extraction path into the degraded fallback.
func (s *Service) parseCompletion(raw string) (out models.AssistantReply) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error().Interface("panic", r).Msg("assistant extraction panicked")
			out = Normalize(nil, raw)
		}
	}()

	candidate, ok := ExtractCandidate(raw)
	if !ok {
		s.Logger.Debug().Int("raw_len", len(raw)).Msg("completion had no parseable object, using raw text")
	}
	return Normalize(candidate, raw)
}
