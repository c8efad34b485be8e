package service

import (
	"fmt"
	"strings"

	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
)

// CompileRefinedPrompt builds the finalized requirement text from the
// project name, its description and every user turn. Assistant turns are
// left out: only requirements the user stated are captured.
func CompileRefinedPrompt(st *domain.ConversationState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", st.ProjectName)
	fmt.Fprintf(&b, "Description: %s\n\n", st.ProjectDescription)
	b.WriteString("Refined Requirements based on conversation:\n")
	for _, content := range st.Transcript.UserTurns() {
		fmt.Fprintf(&b, "\nUser requirement: %s\n", content)
	}
	return b.String()
}

// OpeningMessage is the synthetic first user turn of a conversation.
func OpeningMessage(name, description string) string {
	return fmt.Sprintf("I want to create a project called '%s'. %s", name, description)
}
