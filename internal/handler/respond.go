package handler

import (
	"errors"
	"log"
	"net/http"

	"alumnihub/internal/apperr"
	"alumnihub/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status. Anything outside
// the taxonomy is logged server-side and surfaced as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrDuplicateEmail),
		errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrUpload):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, apperr.ErrPendingApproval):
		c.JSON(http.StatusForbidden, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, apperr.ErrNotPending):
		c.JSON(http.StatusConflict, model.NewErrorResponse(err.Error(), ""))
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Server error", ""))
	}
}
