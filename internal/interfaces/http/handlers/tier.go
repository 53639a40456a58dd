package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bivex/creatorhub/internal/application/command"
	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/application/query"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// TierHandler handles subscription tier endpoints
type TierHandler struct {
	pricing   *query.TierPricingQuery
	createCmd *command.CreateTierCommand
	discount  *command.TierDiscountCommand
	retire    *command.RetireTierCommand
}

// NewTierHandler creates a new tier handler
func NewTierHandler(
	pricing *query.TierPricingQuery,
	createCmd *command.CreateTierCommand,
	discount *command.TierDiscountCommand,
	retire *command.RetireTierCommand,
) *TierHandler {
	return &TierHandler{
		pricing:   pricing,
		createCmd: createCmd,
		discount:  discount,
		retire:    retire,
	}
}

// GetPrice returns the effective price of a tier
// @Summary Get tier price
// @Tags tiers
// @Produce json
// @Param id path string true "Tier ID"
// @Success 200 {object} response.SuccessResponse{data=dto.TierPriceResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /tiers/{id}/price [get]
func (h *TierHandler) GetPrice(c *gin.Context) {
	resp, err := h.pricing.Price(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetRevenue returns the projected revenue of a tier
// @Summary Get tier revenue
// @Tags tiers
// @Produce json
// @Security Bearer
// @Param id path string true "Tier ID"
// @Success 200 {object} response.SuccessResponse{data=dto.TierRevenueResponse}
// @Failure 403 {object} response.ErrorResponse
// @Router /tiers/{id}/revenue [get]
func (h *TierHandler) GetRevenue(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.pricing.Revenue(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// CreateTier creates a tier on the caller's creator profile
// @Summary Create tier
// @Tags tiers
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateTierRequest true "Tier"
// @Success 201 {object} response.SuccessResponse{data=dto.TierResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /tiers [post]
func (h *TierHandler) CreateTier(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateTierRequest
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

// AddDiscount sets a time-limited discount on a tier
// @Router /tiers/{id}/discount [post]
func (h *TierHandler) AddDiscount(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.AddDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.discount.Add(c.Request.Context(), a, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// RemoveDiscount clears the tier discount
// @Router /tiers/{id}/discount [delete]
func (h *TierHandler) RemoveDiscount(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.discount.Remove(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// ArchiveTier hides the tier from new subscribers
// @Router /tiers/{id}/archive [post]
func (h *TierHandler) ArchiveTier(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	resp, err := h.retire.Archive(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteTier removes a tier that has no subscribers
// @Router /tiers/{id} [delete]
func (h *TierHandler) DeleteTier(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.retire.Delete(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
