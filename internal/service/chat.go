package service

import (
	"context"
	"errors"

	"github.com/shorechef/backend/internal/completion"
	"github.com/shorechef/backend/internal/navigator"
	"github.com/sirupsen/logrus"
)

const (
	SourceStepByStep = "rag_step_by_step"
	SourceNoContext  = "error_no_context"

	ReplyNoContext  = "Sorry, I don't have a recipe context. Please select a recipe first."
	ReplyStepFailed = "I'm sorry, I had trouble fetching that step."
)

// ChatReply is the outcome of one chat turn. Context is nil unless the
// step was delivered.
type ChatReply struct {
	Reply   string
	Source  string
	Context *navigator.Context
}

// ChatService guides a user through a recipe one step at a time. It keeps
// no state; the caller round-trips the context.
type ChatService struct {
	nav       *navigator.Navigator
	completer completion.Completer
	log       logrus.FieldLogger
}

func NewChatService(nav *navigator.Navigator, completer completion.Completer, log logrus.FieldLogger) *ChatService {
	if completer == nil {
		completer = completion.Unavailable{}
	}
	return &ChatService{
		nav:       nav,
		completer: completer,
		log:       log.WithField("component", "chat"),
	}
}

func (s *ChatService) Chat(ctx context.Context, message, language string, c navigator.Context) ChatReply {
	turn, err := s.nav.Turn(message, language, c)
	if errors.Is(err, navigator.ErrNoContext) {
		return ChatReply{Reply: ReplyNoContext, Source: SourceNoContext}
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to build step prompt")
		return ChatReply{Reply: ReplyStepFailed, Source: string(completion.SourceAPICall)}
	}

	log := s.log.WithFields(logrus.Fields{
		"recipe_title": turn.Context.RecipeTitle,
		"step":         turn.Step,
		"language":     language,
	})

	out := completion.Interpret(s.completer.Generate(ctx, turn.Prompt))
	if !out.OK() {
		entry := log.WithField("source", out.Source)
		switch {
		case out.Err != nil:
			entry.WithError(out.Err).Error("Error calling completion service")
		case out.BlockReason != "":
			entry.WithFields(logrus.Fields{
				"block_reason":  out.BlockReason,
				"finish_reason": out.FinishReason,
			}).Warn("Completion was blocked")
		default:
			entry.WithField("finish_reason", out.FinishReason).Warn("Completion returned an empty response")
		}
		return ChatReply{Reply: ReplyStepFailed, Source: string(out.Source)}
	}

	log.Debug("Delivered recipe step")
	next := turn.Context
	return ChatReply{Reply: out.Text, Source: SourceStepByStep, Context: &next}
}
