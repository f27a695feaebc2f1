package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/server/http/dto"
)

// MaxWebhookBytes caps webhook bodies.
const MaxWebhookBytes int64 = 5 << 20

const stripeSignatureHeader = "Stripe-Signature"

// WebhookHandler receives provider notifications.
type WebhookHandler struct {
	facade WebhookFacade
	logger *slog.Logger
}

// NewWebhookHandler creates WebhookHandler instance.
func NewWebhookHandler(facade WebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Stripe handles POST /api/webhook/stripe.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, ok := readWebhookBody(c)
	if !ok {
		return
	}

	signature := c.GetHeader(stripeSignatureHeader)
	if signature == "" {
		abortError(c, http.StatusBadRequest, "No signature found")
		return
	}

	result, err := h.facade.HandlePaymentWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		h.writePaymentError(c, result, err)
		return
	}

	if result.Outcome == model.WebhookOutcomeIgnored {
		message := "Unhandled event type"
		if result.Kind == model.PaymentEventCheckoutCompleted {
			message = "Buyer no longer exists"
		}
		c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OK", Order: dto.NewOrderResponse(result.Order)})
}

func (h *WebhookHandler) writePaymentError(c *gin.Context, result *model.WebhookResult, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrSignatureInvalid):
		abortError(c, http.StatusBadRequest, "Webhook signature verification failed")
	case errors.Is(err, domainErrors.ErrDuplicateOrder):
		var order *model.Order
		if result != nil {
			order = result.Order
		}
		c.AbortWithStatusJSON(http.StatusConflict, dto.MessageResponse{
			Message: "Order already exists",
			Order:   duplicateOrder(order),
		})
	case errors.Is(err, domainErrors.ErrMalformedEvent):
		abortError(c, http.StatusBadRequest, "Malformed event")
	case errors.Is(err, domainErrors.ErrTimeout):
		h.logger.Error("webhook processing timeout", slog.String("error", err.Error()))
		abortError(c, http.StatusInternalServerError, "Webhook processing timeout")
	default:
		internalError(c, h.logger, err)
	}
}

// duplicateOrder exposes only the identifying fields of the existing order.
func duplicateOrder(o *model.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{StripeID: o.StripeID, EventID: o.EventID, BuyerID: o.BuyerID}
}

// Clerk handles POST /api/webhook/clerk.
func (h *WebhookHandler) Clerk(c *gin.Context) {
	payload, ok := readWebhookBody(c)
	if !ok {
		return
	}

	result, err := h.facade.HandleIdentityWebhook(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSignatureInvalid):
			abortError(c, http.StatusBadRequest, "Webhook signature verification failed")
		case errors.Is(err, domainErrors.ErrMalformedEvent):
			abortError(c, http.StatusBadRequest, "Malformed event")
		case errors.Is(err, domainErrors.ErrNotFound):
			abortError(c, http.StatusNotFound, "Not found")
		default:
			internalError(c, h.logger, err)
		}
		return
	}

	message := "OK"
	if result.Outcome == model.WebhookOutcomeIgnored {
		message = "Unhandled event type"
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// readWebhookBody returns the untouched request bytes or writes 413.
func readWebhookBody(c *gin.Context) ([]byte, bool) {
	if c.Request.ContentLength > MaxWebhookBytes {
		abortError(c, http.StatusRequestEntityTooLarge, "Payload too large")
		return nil, false
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBytes))
	if err != nil {
		if isMaxBytesError(err) {
			abortError(c, http.StatusRequestEntityTooLarge, "Payload too large")
			return nil, false
		}
		abortError(c, http.StatusBadRequest, "Unable to read body")
		return nil, false
	}
	return payload, true
}
