package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/server/http/dto"
)

// EventHandler manages events.
type EventHandler struct {
	facade EventFacade
	logger *slog.Logger
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(facade EventFacade, logger *slog.Logger) *EventHandler {
	return &EventHandler{facade: facade, logger: logger}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid event")
		return
	}

	event, err := h.facade.CreateEvent(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidEvent):
			abortError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			abortError(c, http.StatusConflict, "Event already exists")
		default:
			internalError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewEventResponse(event))
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.facade.Event(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			abortError(c, http.StatusNotFound, "Event not found")
			return
		}
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEventResponse(event))
}
