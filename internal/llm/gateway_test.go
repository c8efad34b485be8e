package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge-backend/config"
)

type chatCall struct {
	system  string
	history []Message
}

type fakeProvider struct {
	chats     []chatCall
	prompts   []string
	chatErr   error
	failAfter int // fail Complete once this many prompts have succeeded; <0 never
}

func newFakeProvider() *fakeProvider { return &fakeProvider{failAfter: -1} }

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(_ context.Context, system string, history []Message) (string, error) {
	cp := append([]Message(nil), history...)
	f.chats = append(f.chats, chatCall{system: system, history: cp})
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return "  reply to " + history[len(history)-1].Content + "\n", nil
}

func (f *fakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	if f.failAfter >= 0 && len(f.prompts) >= f.failAfter {
		f.prompts = append(f.prompts, prompt)
		return "", errors.New("quota exceeded")
	}
	f.prompts = append(f.prompts, prompt)
	return "artifact " + string(rune('A'+len(f.prompts)-1)), nil
}

func TestConversationKeepsLinearHistory(t *testing.T) {
	p := newFakeProvider()
	gw := NewGatewayWithProvider(p, 0, 1)

	conv := gw.StartConversation()
	reply, err := conv.Send(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "reply to first", reply)

	_, err = conv.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, p.chats, 2)
	assert.Equal(t, RefinementPersona, p.chats[0].system)
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply to first"},
		{Role: RoleUser, Content: "second"},
	}, p.chats[1].history)
}

func TestConversationFailureLeavesHistoryUntouched(t *testing.T) {
	p := newFakeProvider()
	gw := NewGatewayWithProvider(p, 0, 1)
	conv := gw.StartConversation()

	_, err := conv.Send(context.Background(), "first")
	require.NoError(t, err)

	p.chatErr = errors.New("network down")
	_, err = conv.Send(context.Background(), "lost")
	require.Error(t, err)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, opChat, gwErr.Op)
	assert.Equal(t, "fake", gwErr.Provider)

	p.chatErr = nil
	_, err = conv.Send(context.Background(), "third")
	require.NoError(t, err)
	last := p.chats[len(p.chats)-1].history
	assert.Len(t, last, 3, "failed send must not leave a dangling user message")
}

func TestStartConversationIsContextFree(t *testing.T) {
	p := newFakeProvider()
	gw := NewGatewayWithProvider(p, 0, 1)

	_, err := gw.StartConversation().Send(context.Background(), "a")
	require.NoError(t, err)
	_, err = gw.StartConversation().Send(context.Background(), "b")
	require.NoError(t, err)

	assert.Len(t, p.chats[1].history, 1)
}

func TestSynthesizeArtifacts(t *testing.T) {
	p := newFakeProvider()
	gw := NewGatewayWithProvider(p, 0, 1)

	arts, err := gw.SynthesizeArtifacts(context.Background(), "Project: Blog")
	require.NoError(t, err)

	require.Len(t, p.prompts, 3)
	assert.Contains(t, p.prompts[0], "frameworks and languages")
	assert.Contains(t, p.prompts[1], "10-15 steps")
	assert.Contains(t, p.prompts[2], "// PROJECT NAME:")
	assert.Contains(t, p.prompts[2], "Tech Stack: artifact A")
	for _, prompt := range p.prompts {
		assert.Contains(t, prompt, "Project: Blog")
	}

	assert.Equal(t, "artifact A", arts.TechStack)
	assert.Equal(t, "artifact B", arts.Checklist)
	assert.Equal(t, "artifact C", arts.RulesDocument)
}

func TestSynthesizeArtifactsAbortsOnFailure(t *testing.T) {
	p := newFakeProvider()
	p.failAfter = 1
	gw := NewGatewayWithProvider(p, 0, 1)

	arts, err := gw.SynthesizeArtifacts(context.Background(), "Project: Blog")
	require.Error(t, err)
	assert.Nil(t, arts)
	assert.Len(t, p.prompts, 2, "rules prompt is never issued after the checklist fails")

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, opChecklist, gwErr.Op)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestRateLimiterHonoursContext(t *testing.T) {
	p := newFakeProvider()
	gw := NewGatewayWithProvider(p, 0.001, 1)
	conv := gw.StartConversation()

	_, err := conv.Send(context.Background(), "uses the burst")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = conv.Send(ctx, "waits")
	require.Error(t, err)
	assert.Len(t, p.chats, 1)
}

func TestNewGatewayRequiresKey(t *testing.T) {
	_, err := NewGateway(config.AIConfig{Provider: config.ProviderGemini})
	var cfgErr *config.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	gw, err := NewGateway(config.AIConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, gw.ProviderName())

	gw, err = NewGateway(config.AIConfig{Provider: config.ProviderGemini, GeminiAPIKey: "g-test"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, gw.ProviderName())
}
