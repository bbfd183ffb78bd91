package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
	"github.com/nipunivithana/cms-backend/internal/pkg/helpers"
)

// AdminController handles account administration
type AdminController struct {
	authService *services.AuthService
}

// NewAdminController creates a new AdminController
func NewAdminController(authService *services.AuthService) *AdminController {
	return &AdminController{authService: authService}
}

// ListUsers returns one page of accounts filtered by role
// @Summary List accounts by role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string true "Role to filter by" Enums(ADMIN, LECTURER, STUDENT)
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Accounts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	role := models.RoleType(ctx.Query("role"))
	if !role.Valid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role").
			WithDetails("role must be one of ADMIN, LECTURER, STUDENT")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	users, pagination, err := c.authService.ListUsers(ctx.Request.Context(), role, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{Items: users, Pagination: pagination}, ""))
}

// ActivateUser re-activates a deactivated account
// @Summary Activate an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Account activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/activate [post]
func (c *AdminController) ActivateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.authService.SetUserActive(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Account activated"))
}

// DeactivateUser deactivates an account. The account keeps its records
// and can be re-activated later; outstanding tokens expire on their own.
// @Summary Deactivate an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Account deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/deactivate [post]
func (c *AdminController) DeactivateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.authService.SetUserActive(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Account deactivated"))
}
