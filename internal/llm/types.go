package llm

import (
	"context"
	"fmt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a provider chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the black-box text generation service behind the gateway.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Chat sends the persona and the full message history and returns the
	// next assistant reply.
	Chat(ctx context.Context, system string, history []Message) (string, error)

	// Complete runs a one-shot completion for a single prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Conversation is a handle bound to one linear chat context.
type Conversation interface {
	Send(ctx context.Context, text string) (string, error)
}

// Artifacts are the derived documents synthesized from a finalized prompt.
type Artifacts struct {
	TechStack     string `json:"frameworks_languages"`
	Checklist     string `json:"checklist_steps"`
	RulesDocument string `json:"cursor_rules_content"`
}

// Error is returned for any failed provider call.
type Error struct {
	Op       string
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai %s (%s): %v", e.Op, e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
