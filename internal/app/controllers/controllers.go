package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
)

// errNoIdentity signals a protected handler running without the
// identity JWTAuth should have stored; it maps to a server error
var errNoIdentity = errors.New("authenticated identity missing from request context")

// parseIDParam reads a numeric path parameter, writing the validation
// error response itself on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
