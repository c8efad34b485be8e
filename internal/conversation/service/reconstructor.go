package service

import (
	"context"
	"fmt"

	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
	"github.com/promptforge/promptforge-backend/internal/llm"
)

// ConversationStarter opens fresh, context-free conversations.
type ConversationStarter interface {
	StartConversation() llm.Conversation
}

// Reconstructor rebuilds provider-side chat context from a stored transcript
// on every request. The provider keeps no durable session, so each exchange
// opens a new conversation, replays every prior user turn in order and only
// then sends the new message. Assistant turns are not replayed; the provider
// regenerates equivalent replies from the persona and the user content.
//
// This costs one provider call per stored user turn plus one for the new
// message.
type Reconstructor struct {
	starter ConversationStarter
}

func NewReconstructor(starter ConversationStarter) *Reconstructor {
	return &Reconstructor{starter: starter}
}

// Exchange replays transcript and returns the reply to message. Intermediate
// replies are discarded. Any failed call aborts the exchange; the caller's
// transcript is never modified.
func (r *Reconstructor) Exchange(ctx context.Context, transcript domain.Transcript, message string) (string, error) {
	conv := r.starter.StartConversation()

	for i, content := range transcript.UserTurns() {
		if _, err := conv.Send(ctx, content); err != nil {
			return "", fmt.Errorf("replay user turn %d: %w", i+1, err)
		}
		replayCallsTotal.Inc()
	}

	reply, err := conv.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return reply, nil
}
