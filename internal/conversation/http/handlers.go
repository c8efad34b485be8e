package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/promptforge/promptforge-backend/internal/api/http/middleware"
	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
	"github.com/promptforge/promptforge-backend/internal/conversation/service"
	"github.com/promptforge/promptforge-backend/internal/llm"
	"github.com/promptforge/promptforge-backend/internal/logging"
	projdomain "github.com/promptforge/promptforge-backend/internal/projects/domain"
)

func (h *Handler) state(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.workflow.State(ctx, middleware.SessionID(c))
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("operation", "load_state").Msg("load conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.view(st)})
}

func (h *Handler) act(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	switch req.Action {
	case service.ActionStartChat:
		st, err := h.workflow.Start(ctx, sid, req.Name, req.Description)
		if err != nil {
			h.fail(c, req.Action, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.view(st)})

	case service.ActionSendMessage:
		st, err := h.workflow.SendMessage(ctx, sid, req.Message)
		if err != nil {
			h.fail(c, req.Action, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.view(st)})

	case service.ActionApprove:
		p, err := h.workflow.Approve(ctx, sid)
		if err != nil {
			h.fail(c, req.Action, err)
			return
		}
		location := fmt.Sprintf("/api/v1/projects/%d", p.ID)
		c.Header("Location", location)
		c.JSON(http.StatusCreated, gin.H{
			"ok":       true,
			"message":  fmt.Sprintf("Project '%s' created.", p.Name),
			"project":  p,
			"redirect": location,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": fmt.Sprintf("unknown action %q", req.Action)})
	}
}

func (h *Handler) abandon(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.workflow.Abandon(ctx, middleware.SessionID(c)); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("operation", service.ActionAbandon).Msg("abandon failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to clear conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.view(nil)})
}

// fail renders a failed transition together with the conversation as it
// stands after the failure.
func (h *Handler) fail(c *gin.Context, action string, err error) {
	ctx := c.Request.Context()

	// Rendering an error never touches the stored state; a state that cannot
	// be read renders as empty.
	st, _ := h.workflow.Peek(ctx, middleware.SessionID(c))

	status, message := describeError(action, err, st)
	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx).Error().Err(err).Str("operation", action).Msg("transition failed")
	} else {
		logging.FromContext(ctx).Warn().Err(err).Str("operation", action).Msg("transition rejected")
	}

	c.JSON(status, gin.H{"ok": false, "error": message, "state": h.view(st)})
}

func describeError(action string, err error, st *domain.ConversationState) (int, string) {
	var (
		validation  *domain.ValidationError
		persistence *domain.PersistenceError
		gateway     *llm.Error
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.Is(err, domain.ErrChatUnavailable):
		return http.StatusServiceUnavailable, "Chat functionality is not available."
	case errors.Is(err, domain.ErrNoActiveConversation):
		if action == service.ActionApprove {
			return http.StatusBadRequest, "No active chat session to approve."
		}
		return http.StatusBadRequest, "No active chat session."
	case errors.Is(err, projdomain.ErrDuplicateName):
		name := ""
		if st != nil {
			name = st.ProjectName
		}
		return http.StatusConflict, fmt.Sprintf("Project '%s' already exists.", name)
	case errors.As(err, &persistence):
		return http.StatusInternalServerError, sentence(persistence.Error())
	case errors.As(err, &gateway):
		return http.StatusBadGateway, sentence(err.Error())
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSuffix(string(r), ".")
}
