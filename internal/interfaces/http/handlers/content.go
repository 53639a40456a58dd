package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// ContentHandler handles creator content endpoints
type ContentHandler struct {
	cmd *command.ContentCommand
}

// NewContentHandler creates a new content handler
func NewContentHandler(cmd *command.ContentCommand) *ContentHandler {
	return &ContentHandler{cmd: cmd}
}

// CreateContent stores a draft
// @Router /content [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.cmd.Create(c.Request.Context(), a, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// PublishContent makes a draft visible
// @Router /content/{id}/publish [post]
func (h *ContentHandler) PublishContent(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.cmd.Publish(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteContent marks the content deleted
// @Router /content/{id} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.cmd.Delete(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
