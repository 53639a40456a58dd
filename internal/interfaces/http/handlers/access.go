package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/query"
	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// AccessHandler handles content access endpoints
type AccessHandler struct {
	checkQuery *query.CheckAccessQuery
	consumeCmd *command.ConsumeAccessCommand
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(checkQuery *query.CheckAccessQuery, consumeCmd *command.ConsumeAccessCommand) *AccessHandler {
	return &AccessHandler{checkQuery: checkQuery, consumeCmd: consumeCmd}
}

// CheckAccess reports whether the caller may open the content without recording usage
// @Summary Check content access
// @Tags access
// @Produce json
// @Security Bearer
// @Param id path string true "Content ID"
// @Success 200 {object} response.SuccessResponse{data=dto.AccessDecisionResponse}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /content/{id}/access [get]
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.checkQuery.Execute(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// ConsumeAccess opens the content and records one access on the grant
// @Summary Consume content access
// @Tags access
// @Produce json
// @Security Bearer
// @Param id path string true "Content ID"
// @Success 200 {object} response.SuccessResponse{data=dto.AccessDecisionResponse}
// @Failure 402 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /content/{id}/access [post]
func (h *AccessHandler) ConsumeAccess(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.consumeCmd.Execute(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !resp.Allowed {
		respondDenied(c, entitlement.Reason(resp.Reason))
		return
	}

	response.OK(c, resp)
}
