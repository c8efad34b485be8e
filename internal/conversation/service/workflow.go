package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
	"github.com/promptforge/promptforge-backend/internal/llm"
	"github.com/promptforge/promptforge-backend/internal/logging"
	projdomain "github.com/promptforge/promptforge-backend/internal/projects/domain"
)

const (
	ActionStartChat   = "start_chat"
	ActionSendMessage = "send_message"
	ActionApprove     = "approve_prompt"
	ActionAbandon     = "abandon"
)

// Gateway is the part of the AI gateway the workflow drives.
type Gateway interface {
	ConversationStarter
	SynthesizeArtifacts(ctx context.Context, refined string) (*llm.Artifacts, error)
}

// StateStore holds one ConversationState per session.
type StateStore interface {
	Load(ctx context.Context, sessionID string) (*domain.ConversationState, error)
	Save(ctx context.Context, sessionID string, st *domain.ConversationState) error
	Clear(ctx context.Context, sessionID string) error
}

// ProjectCreator persists an approved project, rejecting taken names with
// projdomain.ErrDuplicateName.
type ProjectCreator interface {
	CreateUnique(ctx context.Context, p *projdomain.Project) error
}

// Workflow drives a session through start, iterate and approve. Stored state
// is only written after every external call of a transition has succeeded.
type Workflow struct {
	states        StateStore
	gateway       Gateway
	reconstructor *Reconstructor
	projects      ProjectCreator
}

// NewWorkflow wires the controller. gateway may be nil, in which case every
// chat transition fails with domain.ErrChatUnavailable.
func NewWorkflow(states StateStore, gateway Gateway, projects ProjectCreator) *Workflow {
	w := &Workflow{
		states:   states,
		gateway:  gateway,
		projects: projects,
	}
	if gateway != nil {
		w.reconstructor = NewReconstructor(gateway)
	}
	return w
}

// ChatAvailable reports whether an AI gateway is configured.
func (w *Workflow) ChatAvailable() bool {
	return w.gateway != nil
}

// State returns the session's conversation. A stored state that fails
// validation is discarded and replaced by a fresh one.
func (w *Workflow) State(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	st, err := w.states.Load(ctx, sessionID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, domain.ErrInvalidState) {
		return nil, err
	}

	logging.FromContext(ctx).Warn().Err(err).Str("operation", "load_state").Msg("discarding invalid conversation state")
	if err := w.states.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return domain.NewConversationState(), nil
}

// Peek returns the session's conversation without repairing it. A stored
// state that fails validation reads as a fresh one and is left in place.
func (w *Workflow) Peek(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	st, err := w.states.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrInvalidState) {
		return domain.NewConversationState(), nil
	}
	return st, err
}

// Start opens a new conversation for project name. Any conversation already
// held by the session is replaced once the opening exchange succeeds.
func (w *Workflow) Start(ctx context.Context, sessionID, name, description string) (st *domain.ConversationState, err error) {
	defer func() { recordTransition(ActionStartChat, err) }()

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "Project name is required."}
	}
	if w.gateway == nil {
		return nil, domain.ErrChatUnavailable
	}

	opening := OpeningMessage(name, description)
	reply, err := w.reconstructor.Exchange(ctx, nil, opening)
	if err != nil {
		return nil, fmt.Errorf("error starting chat: %w", err)
	}

	st = &domain.ConversationState{
		Active:             true,
		ProjectName:        name,
		ProjectDescription: description,
		Transcript:         domain.Transcript{},
	}
	st.AppendExchange(opening, reply)

	if err := w.states.Save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Str("operation", ActionStartChat).Str("project", name).Msg("conversation started")
	return st, nil
}

// SendMessage adds one refinement exchange to the active conversation.
func (w *Workflow) SendMessage(ctx context.Context, sessionID, text string) (st *domain.ConversationState, err error) {
	defer func() { recordTransition(ActionSendMessage, err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &domain.ValidationError{Field: "message", Message: "Message is required."}
	}

	current, err := w.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, domain.ErrNoActiveConversation
	}
	if w.gateway == nil {
		return nil, domain.ErrChatUnavailable
	}

	reply, err := w.reconstructor.Exchange(ctx, current.Transcript, text)
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}

	st = current.Clone()
	st.AppendExchange(text, reply)
	if err := w.states.Save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("operation", ActionSendMessage).Int("turns", len(st.Transcript)).Msg("message exchanged")
	return st, nil
}

// Approve synthesizes the project artifacts and persists the project. On a
// duplicate name the conversation stays Active so the caller can retry.
func (w *Workflow) Approve(ctx context.Context, sessionID string) (p *projdomain.Project, err error) {
	defer func() { recordTransition(ActionApprove, err) }()
	logger := logging.FromContext(ctx)

	st, err := w.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !st.Active || len(st.Transcript) == 0 {
		return nil, domain.ErrNoActiveConversation
	}
	if w.gateway == nil {
		return nil, domain.ErrChatUnavailable
	}

	refined := CompileRefinedPrompt(st)
	arts, err := w.gateway.SynthesizeArtifacts(ctx, refined)
	if err != nil {
		return nil, fmt.Errorf("error generating project data: %w", err)
	}

	p = &projdomain.Project{
		Name:                st.ProjectName,
		Description:         st.ProjectDescription,
		RefinedPrompt:       refined,
		FrameworksLanguages: arts.TechStack,
		ChecklistSteps:      arts.Checklist,
		CursorRulesContent:  arts.RulesDocument,
	}
	if err := w.projects.CreateUnique(ctx, p); err != nil {
		if errors.Is(err, projdomain.ErrDuplicateName) {
			return nil, fmt.Errorf("project '%s' already exists: %w", st.ProjectName, err)
		}
		return nil, &domain.PersistenceError{Err: err}
	}
	projectsCreatedTotal.Inc()

	if err := w.states.Clear(ctx, sessionID); err != nil {
		// The project row is committed; a stale state only blocks a second
		// approval through the duplicate-name check.
		logger.Error().Err(err).Str("operation", ActionApprove).Msg("failed to clear conversation state")
	}

	logger.Info().Str("operation", ActionApprove).Int64("project_id", p.ID).Str("project", p.Name).Msg("project created")
	return p, nil
}

// Abandon discards the session's conversation.
func (w *Workflow) Abandon(ctx context.Context, sessionID string) (err error) {
	defer func() { recordTransition(ActionAbandon, err) }()
	return w.states.Clear(ctx, sessionID)
}
