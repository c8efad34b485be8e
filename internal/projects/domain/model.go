package domain

import (
	"fmt"
	"time"
)

// Project is a finalized, refined project description together with the
// artifacts synthesized from it. Created only at approval.
type Project struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	RefinedPrompt       string    `json:"refined_prompt"`
	FrameworksLanguages string    `json:"frameworks_languages"`
	ChecklistSteps      string    `json:"checklist_steps"`
	CursorRulesContent  string    `json:"cursor_rules_content"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (p Project) String() string {
	return fmt.Sprintf("Project(id=%d, name=%q)", p.ID, p.Name)
}
