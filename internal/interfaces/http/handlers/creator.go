package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// CreatorHandler handles creator profile endpoints
type CreatorHandler struct {
	cmd *command.CreatorProfileCommand
}

// NewCreatorHandler creates a new creator handler
func NewCreatorHandler(cmd *command.CreatorProfileCommand) *CreatorHandler {
	return &CreatorHandler{cmd: cmd}
}

// CreateProfile opens a creator profile for the caller
// @Summary Create creator profile
// @Tags creators
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateCreatorProfileRequest true "Profile"
// @Success 201 {object} response.SuccessResponse{data=dto.CreatorProfileResponse}
// @Failure 409 {object} response.ErrorResponse
// @Router /creators [post]
func (h *CreatorHandler) CreateProfile(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateCreatorProfileRequest
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

// DeactivateProfile closes a creator profile
// @Router /admin/creators/{id}/deactivate [post]
func (h *CreatorHandler) DeactivateProfile(c *gin.Context) {
	var req dto.DeactivateCreatorRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.cmd.Deactivate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// ReactivateProfile reopens a creator profile
// @Router /admin/creators/{id}/reactivate [post]
func (h *CreatorHandler) ReactivateProfile(c *gin.Context) {
	resp, err := h.cmd.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// SetVerification records a verification decision
// @Router /admin/creators/{id}/verification [put]
func (h *CreatorHandler) SetVerification(c *gin.Context) {
	var req dto.VerificationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.cmd.SetVerification(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}
