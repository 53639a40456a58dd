package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/application/query"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	getSubQuery *query.GetSubscriptionQuery
	createCmd   *command.CreateSubscriptionCommand
	cancelCmd   *command.CancelSubscriptionCommand
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	getSubQuery *query.GetSubscriptionQuery,
	createCmd *command.CreateSubscriptionCommand,
	cancelCmd *command.CancelSubscriptionCommand,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubQuery: getSubQuery,
		createCmd:   createCmd,
		cancelCmd:   cancelCmd,
	}
}

// CreateSubscription starts a pending subscription to a tier
// @Summary Subscribe to tier
// @Tags subscription
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} response.SuccessResponse{data=dto.CreateSubscriptionResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.createCmd.Execute(c.Request.Context(), a, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// GetSubscription returns a subscription with its derived figures
// @Summary Get subscription details
// @Tags subscription
// @Produce json
// @Security Bearer
// @Param id path string true "Subscription ID"
// @Success 200 {object} response.SuccessResponse{data=dto.SubscriptionDetailResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.getSubQuery.Execute(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// CancelSubscription cancels the subscription
// @Summary Cancel subscription
// @Tags subscription
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Subscription ID"
// @Param request body dto.CancelSubscriptionRequest false "Cancel request"
// @Success 200 {object} response.SuccessResponse{data=dto.SubscriptionResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CancelSubscriptionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	resp, err := h.cancelCmd.Execute(c.Request.Context(), a, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}
