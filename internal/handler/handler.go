// Package handler exposes the catalog and account services over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamehub/backend/internal/account"
	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the services the HTTP endpoints delegate to.
type Handler struct {
	catalog  *catalog.Service
	accounts *account.Service
	uploads  *storage.Local
}

func New(games *catalog.Service, accounts *account.Service, uploads *storage.Local) *Handler {
	return &Handler{catalog: games, accounts: accounts, uploads: uploads}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// SuccessResponse is returned by endpoints that only report success.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// respondError writes err as {"error": message}. Store and I/O failures are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		if status != http.StatusInternalServerError {
			c.JSON(status, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	logging.FromGin(c).Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	return parseID(name, c.Param(name))
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.ValidationFailed(field, "Invalid "+field)
	}
	return uint(id), nil
}

// currentUser returns the id stored by the auth middleware, or 0.
func currentUser(c *gin.Context) uint {
	id, _ := auth.UserID(c)
	return id
}
