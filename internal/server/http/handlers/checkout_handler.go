package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/server/http/dto"
)

// CheckoutHandler starts ticket purchases.
type CheckoutHandler struct {
	facade CheckoutFacade
	logger *slog.Logger
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{facade: facade, logger: logger}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "eventId is required")
		return
	}

	session, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidEvent):
			abortError(c, http.StatusBadRequest, "eventId is required")
		case errors.Is(err, domainErrors.ErrNotFound):
			abortError(c, http.StatusNotFound, "Event not found")
		case errors.Is(err, domainErrors.ErrEventFinished):
			abortError(c, http.StatusConflict, "Event has already finished")
		case errors.Is(err, domainErrors.ErrDuplicateOrder):
			abortError(c, http.StatusConflict, "Order already exists")
		case errors.Is(err, domainErrors.ErrOwnEvent):
			abortError(c, http.StatusForbidden, "Organizers cannot buy their own event")
		case errors.Is(err, domainErrors.ErrPaymentProvider):
			h.logger.Error("checkout session failed", slog.String("error", err.Error()))
			abortError(c, http.StatusBadGateway, "Payment provider unavailable")
		default:
			internalError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{ID: session.ID, URL: session.URL})
}
