package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptforge/promptforge-backend/internal/logging"
	"github.com/promptforge/promptforge-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Str("operation", "list_projects").Msg("list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	p, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		logging.FromContext(c.Request.Context()).Error().Err(err).Int64("project_id", id).Msg("load project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
