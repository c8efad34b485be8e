package http

import (
	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
	"github.com/promptforge/promptforge-backend/internal/conversation/service"
)

// Handler serves the create-project conversation.
type Handler struct {
	workflow *service.Workflow
}

func New(workflow *service.Workflow) *Handler {
	return &Handler{workflow: workflow}
}

type actionRequest struct {
	Action      string `json:"action" binding:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

type stateView struct {
	ChatAvailable      bool              `json:"chat_available"`
	ChatActive         bool              `json:"chat_active"`
	Phase              domain.Phase      `json:"phase"`
	ProjectName        string            `json:"project_name"`
	ProjectDescription string            `json:"project_description"`
	ChatHistory        domain.Transcript `json:"chat_history"`
}

func (h *Handler) view(st *domain.ConversationState) stateView {
	if st == nil {
		st = domain.NewConversationState()
	}
	history := st.Transcript
	if history == nil {
		history = domain.Transcript{}
	}
	return stateView{
		ChatAvailable:      h.workflow.ChatAvailable(),
		ChatActive:         st.Active,
		Phase:              st.Phase(),
		ProjectName:        st.ProjectName,
		ProjectDescription: st.ProjectDescription,
		ChatHistory:        history,
	}
}
