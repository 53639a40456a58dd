package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	createCmd *command.CreatePaymentCommand
	settleCmd *command.SettlePaymentCommand
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(createCmd *command.CreatePaymentCommand, settleCmd *command.SettlePaymentCommand) *PaymentHandler {
	return &PaymentHandler{createCmd: createCmd, settleCmd: settleCmd}
}

// CreatePayment records a tip, donation or one-time purchase
// @Summary Create direct payment
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} response.SuccessResponse{data=dto.PaymentResponse}
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
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

// CompletePayment settles a pending payment
// @Summary Complete payment
// @Tags payments
// @Produce json
// @Security Bearer
// @Param id path string true "Payment ID"
// @Success 200 {object} response.SuccessResponse{data=dto.PaymentResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /payments/{id}/complete [post]
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	resp, err := h.settleCmd.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// RefundPayment refunds part or all of a completed payment
// @Summary Refund payment
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Payment ID"
// @Param request body dto.RefundPaymentRequest true "Refund"
// @Success 200 {object} response.SuccessResponse{data=dto.PaymentResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var req dto.RefundPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.settleCmd.Refund(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}
