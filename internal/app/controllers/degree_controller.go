package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
)

// DegreeController handles degree programme administration
type DegreeController struct {
	degreeService *services.DegreeService
}

// NewDegreeController creates a new DegreeController
func NewDegreeController(degreeService *services.DegreeService) *DegreeController {
	return &DegreeController{degreeService: degreeService}
}

// CreateDegree creates a degree programme
// @Summary Create a degree
// @Tags degrees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDegreeRequest true "Degree information"
// @Success 201 {object} dto.APIResponse{data=models.Degree} "Degree created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Degree already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /degrees [post]
func (c *DegreeController) CreateDegree(ctx *gin.Context) {
	var req dto.CreateDegreeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	degree, err := c.degreeService.CreateDegree(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(degree, "Degree created"))
}

// ListDegrees returns all degree programmes
// @Summary List degrees
// @Tags degrees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Degree} "Degrees retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /degrees [get]
func (c *DegreeController) ListDegrees(ctx *gin.Context) {
	degrees, err := c.degreeService.ListDegrees(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(degrees, ""))
}

// GetDegree retrieves a degree by ID
// @Summary Get a degree
// @Tags degrees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Degree ID"
// @Success 200 {object} dto.APIResponse{data=models.Degree} "Degree retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid degree ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Degree not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /degrees/{id} [get]
func (c *DegreeController) GetDegree(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	degree, err := c.degreeService.GetDegree(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(degree, ""))
}

// UpdateDegree updates a degree
// @Summary Update a degree
// @Tags degrees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Degree ID"
// @Param request body dto.UpdateDegreeRequest true "Degree fields"
// @Success 200 {object} dto.APIResponse{data=models.Degree} "Degree updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Degree not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /degrees/{id} [put]
func (c *DegreeController) UpdateDegree(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDegreeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	degree, err := c.degreeService.UpdateDegree(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(degree, "Degree updated"))
}

// DeleteDegree removes a degree without courses
// @Summary Delete a degree
// @Tags degrees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Degree ID"
// @Success 200 {object} dto.APIResponse "Degree deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid degree ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Degree not found"
// @Failure 409 {object} dto.ErrorResponse "Degree has courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /degrees/{id} [delete]
func (c *DegreeController) DeleteDegree(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.degreeService.DeleteDegree(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Degree deleted"))
}
