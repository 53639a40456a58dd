package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/application/middleware"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/infrastructure/logging"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
)

// respondError maps a domain error onto an HTTP status
func respondError(c *gin.Context, err error) {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation), errors.Is(err, domainErrors.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case domainErrors.IsNotFound(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, domainErrors.ErrTierHasSubscribers), errors.Is(err, domainErrors.ErrProfileExists):
		response.Conflict(c, err.Error())
	case domainErrors.IsConcurrentModification(err):
		response.Conflict(c, "Resource was modified concurrently, retry the request")
	case domainErrors.IsForbidden(err):
		response.Forbidden(c, err.Error())
	case domainErrors.IsInvalidState(err):
		response.UnprocessableEntity(c, err.Error())
	default:
		_ = c.Error(err)
		logging.GetLogger(c).Error("request failed", zap.Error(err))
		response.InternalError(c, "Internal server error")
	}
}

// respondDenied maps a negative access decision onto 402 or 403
func respondDenied(c *gin.Context, reason entitlement.Reason) {
	switch reason {
	case entitlement.ReasonNoGrant, entitlement.ReasonGrantPending,
		entitlement.ReasonGrantExpired, entitlement.ReasonSubscriptionInactive:
		response.PaymentRequired(c, reason.String(), "Access to this content requires an active entitlement")
	default:
		response.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", reason.String(), "Access to this content is denied")
	}
}

// actor returns the authenticated caller or writes 401
func actor(c *gin.Context) (service.Actor, bool) {
	a, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return service.Actor{}, false
	}
	return a, true
}

// bindJSON decodes the body or writes 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request format: "+err.Error())
		return false
	}
	return true
}
