package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/server/http/dto"
)

// OrderHandler serves order listings.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page := queryInt(c, "page")
	limit := queryInt(c, "limit")

	result, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), page, limit)
	if err != nil {
		internalError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderPageResponse{
		Data:       dto.NewOrderViewsResponse(result.Items),
		TotalPages: result.TotalPages,
	})
}

// Registrants handles GET /api/events/:id/orders.
func (h *OrderHandler) Registrants(c *gin.Context) {
	views, err := h.facade.Registrants(c.Request.Context(), CurrentUserID(c), c.Param("id"), c.Query("search"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			abortError(c, http.StatusNotFound, "Event not found")
		case errors.Is(err, domainErrors.ErrForbidden):
			abortError(c, http.StatusForbidden, "Forbidden")
		default:
			internalError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.RegistrantsResponse{Data: dto.NewOrderViewsResponse(views)})
}

// queryInt returns 0 for absent or malformed values so defaults apply.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
