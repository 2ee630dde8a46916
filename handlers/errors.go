package handlers

import (
	"errors"
	"net/http"

	bookingSvc "slotify/services/booking"
	"slotify/services/scheduling"
	"slotify/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps typed service errors onto HTTP statuses. Unknown errors
// become 500s without leaking internals.
func respondError(c *gin.Context, err error) {
	var vErr bookingSvc.ValidationError
	var sErr scheduling.ValidationError
	var nfErr bookingSvc.NotFoundError
	var cfErr bookingSvc.ConflictError
	var blErr bookingSvc.BusinessLogicError

	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", vErr.Error())
	case errors.As(err, &sErr):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", sErr.Error())
	case errors.As(err, &nfErr):
		utils.JSONError(c, http.StatusNotFound, "not found", nfErr.Error())
	case errors.As(err, &cfErr):
		utils.JSONError(c, http.StatusConflict, "conflict", cfErr.Error())
	case errors.As(err, &blErr):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, blErr.Code, blErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "the request could not be completed")
	}
}
