package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/server/http/dto"
)

// UserHandler serves the caller's profile.
type UserHandler struct {
	facade UserFacade
	logger *slog.Logger
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade, logger *slog.Logger) *UserHandler {
	return &UserHandler{facade: facade, logger: logger}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.facade.Me(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			abortError(c, http.StatusNotFound, "User not found")
			return
		}
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// CompleteProfile handles PUT /api/users/me/profile.
func (h *UserHandler) CompleteProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid profile")
		return
	}

	user, err := h.facade.CompleteProfile(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidProfile):
			abortError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domainErrors.ErrIdentityUnavailable):
			abortError(c, http.StatusBadGateway, "Profile saved but identity provider update failed")
		case errors.Is(err, domainErrors.ErrNotFound):
			abortError(c, http.StatusNotFound, "User not found")
		default:
			internalError(c, h.logger, err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
