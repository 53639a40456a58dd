package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// AdminHandler handles admin endpoints
type AdminHandler struct {
	grantCmd    *command.GrantAccessCommand
	revokeCmd   *command.RevokeAccessCommand
	earningsCmd *command.ApplyEarningsCommand
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	grantCmd *command.GrantAccessCommand,
	revokeCmd *command.RevokeAccessCommand,
	earningsCmd *command.ApplyEarningsCommand,
) *AdminHandler {
	return &AdminHandler{
		grantCmd:    grantCmd,
		revokeCmd:   revokeCmd,
		earningsCmd: earningsCmd,
	}
}

// GrantAccess issues a content access grant to a user
// @Summary Grant content access
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.GrantAccessRequest true "Grant request"
// @Success 201 {object} response.SuccessResponse{data=dto.GrantResponse}
// @Router /admin/access [post]
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	var req dto.GrantAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.grantCmd.Execute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// RevokeAccess revokes a content access grant
// @Summary Revoke content access
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Grant ID"
// @Param request body dto.RevokeAccessRequest true "Revoke request"
// @Success 200 {object} response.SuccessResponse{data=dto.GrantResponse}
// @Router /admin/access/{id}/revoke [post]
func (h *AdminHandler) RevokeAccess(c *gin.Context) {
	var req dto.RevokeAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.revokeCmd.Execute(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// ApplyEarnings adjusts a creator's earnings by a signed delta
// @Summary Apply earnings delta
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Creator profile ID"
// @Param request body dto.ApplyEarningsRequest true "Delta"
// @Success 200 {object} response.SuccessResponse{data=dto.CreatorProfileResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/creators/{id}/earnings [post]
func (h *AdminHandler) ApplyEarnings(c *gin.Context) {
	var req dto.ApplyEarningsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.earningsCmd.Execute(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}
