package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/promptforge/promptforge-backend/config"
	"github.com/promptforge/promptforge-backend/internal/logging"
)

const (
	opChat      = "chat"
	opTechStack = "synthesize_stack"
	opChecklist = "synthesize_checklist"
	opRules     = "synthesize_rules"
)

// Gateway issues chat and completion calls against one provider. It holds no
// conversation state of its own.
type Gateway struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewGateway builds the provider selected by cfg. A ConfigurationError is
// returned when credentials are missing.
func NewGateway(cfg config.AIConfig) (*Gateway, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg)
	default:
		p, err = NewGeminiProvider(cfg)
	}
	if err != nil {
		return nil, err
	}

	return NewGatewayWithProvider(p, cfg.RateLimit, cfg.RateBurst), nil
}

// NewGatewayWithProvider wraps an existing provider. ratePerSecond <= 0
// disables pacing.
func NewGatewayWithProvider(p Provider, ratePerSecond float64, burst int) *Gateway {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Gateway{
		provider: p,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// ProviderName returns the name of the wrapped provider.
func (g *Gateway) ProviderName() string {
	return g.provider.Name()
}

// StartConversation returns a fresh, context-free conversation primed with
// the refinement persona.
func (g *Gateway) StartConversation() Conversation {
	return &chatSession{gw: g}
}

// SynthesizeArtifacts derives the tech stack, the checklist and the rules
// document from a finalized prompt. Any failure aborts the whole synthesis.
func (g *Gateway) SynthesizeArtifacts(ctx context.Context, refined string) (*Artifacts, error) {
	stack, err := g.complete(ctx, opTechStack, techStackPrompt(refined))
	if err != nil {
		return nil, err
	}

	checklist, err := g.complete(ctx, opChecklist, checklistPrompt(refined))
	if err != nil {
		return nil, err
	}

	rules, err := g.complete(ctx, opRules, rulesPrompt(refined, stack))
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		TechStack:     stack,
		Checklist:     checklist,
		RulesDocument: rules,
	}, nil
}

func (g *Gateway) complete(ctx context.Context, op, prompt string) (string, error) {
	return g.call(ctx, op, func(ctx context.Context) (string, error) {
		return g.provider.Complete(ctx, prompt)
	})
}

func (g *Gateway) call(ctx context.Context, op string, fn func(context.Context) (string, error)) (string, error) {
	logger := logging.FromContext(ctx)
	name := g.provider.Name()

	if err := g.limiter.Wait(ctx); err != nil {
		logger.Error().Err(err).Str("operation", op).Msg("rate limiter")
		return "", &Error{Op: op, Provider: name, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	start := time.Now()
	out, err := fn(ctx)
	duration := time.Since(start)
	recordProviderCall(name, op, duration, err)

	if err != nil {
		logger.Error().Err(err).Str("operation", op).Str("provider", name).Dur("latency", duration).Msg("provider call failed")
		return "", &Error{Op: op, Provider: name, Err: err}
	}

	logger.Debug().Str("operation", op).Str("provider", name).Dur("latency", duration).Msg("provider call")
	return strings.TrimSpace(out), nil
}

type chatSession struct {
	gw      *Gateway
	history []Message
}

// Send appends text to the conversation and returns the reply. On failure
// the conversation is left as it was.
func (s *chatSession) Send(ctx context.Context, text string) (string, error) {
	msgs := make([]Message, 0, len(s.history)+2)
	msgs = append(msgs, s.history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: text})

	reply, err := s.gw.call(ctx, opChat, func(ctx context.Context) (string, error) {
		return s.gw.provider.Chat(ctx, RefinementPersona, msgs)
	})
	if err != nil {
		return "", err
	}

	s.history = append(msgs, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}
