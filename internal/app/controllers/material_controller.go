package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/nipunivithana/cms-backend/internal/app/auth"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// MaterialController handles course material endpoints
type MaterialController struct {
	materialService *services.MaterialService
	authzService    *appauth.AuthorizationService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService *services.MaterialService, authzService *appauth.AuthorizationService) *MaterialController {
	return &MaterialController{
		materialService: materialService,
		authzService:    authzService,
	}
}

func (c *MaterialController) authorizeLecturer(ctx *gin.Context, courseID int64) bool {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return false
	}
	allowed := []models.RoleType{models.RoleLecturer}
	ownership := c.authzService.LecturerAssignedToCourse(claims.UserID, courseID)
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	return true
}

func (c *MaterialController) authorizeParticipant(ctx *gin.Context, courseID int64) bool {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return false
	}
	var ownership appauth.OwnershipCheck
	if claims.Role != models.RoleAdmin {
		ownership = c.authzService.CourseParticipant(claims, courseID)
	}
	allowed := []models.RoleType{models.RoleAdmin, models.RoleLecturer, models.RoleStudent}
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	return true
}

// Upload stores a course material file
// @Summary Upload course material
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param title formData string true "Material title"
// @Param description formData string false "Material description"
// @Param file formData file true "Material file"
// @Success 201 {object} dto.APIResponse{data=models.CourseMaterial} "Material uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeLecturer(ctx, courseID) {
		return
	}

	var req dto.UploadMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Material file is required").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material, err := c.materialService.Upload(ctx.Request.Context(), courseID, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(material, "Material uploaded"))
}

// List returns the materials of a course
// @Summary List course materials
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseMaterial} "Materials retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeParticipant(ctx, courseID) {
		return
	}

	materials, err := c.materialService.ListForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(materials, ""))
}

// Download streams a material file
// @Summary Download course material
// @Tags materials
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param materialId path int true "Material ID"
// @Success 200 {file} binary "Material file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials/{materialId} [get]
func (c *MaterialController) Download(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	materialID, ok := parseIDParam(ctx, "materialId")
	if !ok {
		return
	}
	if !c.authorizeParticipant(ctx, courseID) {
		return
	}

	material, err := c.materialService.Get(ctx.Request.Context(), materialID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if material.CourseID != courseID {
		middleware.HandleAPIError(ctx, apperrors.ErrMaterialNotFound)
		return
	}

	ctx.FileAttachment(c.materialService.FilePath(material), material.FileName)
}

// Delete removes a material
// @Summary Delete course material
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param materialId path int true "Material ID"
// @Success 200 {object} dto.APIResponse "Material deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials/{materialId} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	materialID, ok := parseIDParam(ctx, "materialId")
	if !ok {
		return
	}
	if !c.authorizeLecturer(ctx, courseID) {
		return
	}

	material, err := c.materialService.Get(ctx.Request.Context(), materialID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if material.CourseID != courseID {
		middleware.HandleAPIError(ctx, apperrors.ErrMaterialNotFound)
		return
	}

	if err := c.materialService.Delete(ctx.Request.Context(), materialID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Material deleted"))
}
