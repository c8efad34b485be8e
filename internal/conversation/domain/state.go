package domain

import (
	"fmt"
	"strings"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered list of turns of one conversation. Order is
// replayed to rebuild provider context.
type Transcript []Turn

// UserTurns returns the content of every user turn in order.
func (t Transcript) UserTurns() []string {
	out := make([]string, 0, len(t)/2+1)
	for _, turn := range t {
		if turn.Role == RoleUser {
			out = append(out, turn.Content)
		}
	}
	return out
}

// Phase is the workflow position derived from a ConversationState.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseActive     Phase = "active"
)

// ConversationState is the per-session record of the project being refined.
// At most one exists per session.
type ConversationState struct {
	Active             bool       `json:"active"`
	ProjectName        string     `json:"project_name"`
	ProjectDescription string     `json:"project_description"`
	Transcript         Transcript `json:"transcript"`
}

// NewConversationState returns the empty NotStarted state.
func NewConversationState() *ConversationState {
	return &ConversationState{Transcript: Transcript{}}
}

func (s *ConversationState) Phase() Phase {
	if s.Active {
		return PhaseActive
	}
	return PhaseNotStarted
}

// AppendExchange records a user turn and the assistant reply to it.
func (s *ConversationState) AppendExchange(user, assistant string) {
	s.Transcript = append(s.Transcript,
		Turn{Role: RoleUser, Content: user},
		Turn{Role: RoleAssistant, Content: assistant},
	)
}

// Clone returns a deep copy so callers can mutate without touching the
// stored state.
func (s *ConversationState) Clone() *ConversationState {
	cp := *s
	cp.Transcript = append(Transcript{}, s.Transcript...)
	return &cp
}

// Validate checks a state read back from session storage.
func (s *ConversationState) Validate() error {
	if s.Active && strings.TrimSpace(s.ProjectName) == "" {
		return fmt.Errorf("%w: active conversation without project name", ErrInvalidState)
	}
	if !s.Active && len(s.Transcript) > 0 {
		return fmt.Errorf("%w: transcript present on inactive conversation", ErrInvalidState)
	}
	for i, turn := range s.Transcript {
		switch turn.Role {
		case RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("%w: turn %d has role %q", ErrInvalidState, i, turn.Role)
		}
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if turn.Role != want {
			return fmt.Errorf("%w: turn %d out of order", ErrInvalidState, i)
		}
	}
	if len(s.Transcript)%2 != 0 {
		return fmt.Errorf("%w: transcript ends without an assistant reply", ErrInvalidState)
	}
	return nil
}
