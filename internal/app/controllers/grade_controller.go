package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/nipunivithana/cms-backend/internal/app/auth"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
)

// GradeController handles grade entry and retrieval
type GradeController struct {
	gradingService *services.GradingService
	userRepo       repositories.IUserRepository
	authzService   *appauth.AuthorizationService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradingService *services.GradingService, userRepo repositories.IUserRepository, authzService *appauth.AuthorizationService) *GradeController {
	return &GradeController{
		gradingService: gradingService,
		userRepo:       userRepo,
		authzService:   authzService,
	}
}

// SetGrade records a grade for a student in a course. Only the course's
// assigned lecturer may grade; admins may not.
// @Summary Set a final grade
// @Description Records a numeric grade with optional feedback, completing the enrollment. Re-grading overwrites.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.SetGradeRequest true "Grade and feedback"
// @Success 200 {object} dto.APIResponse "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/grades/{studentId} [put]
func (c *GradeController) SetGrade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}

	allowed := []models.RoleType{models.RoleLecturer}
	ownership := c.authzService.LecturerAssignedToCourse(claims.UserID, courseID)
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.gradingService.SetGrade(ctx.Request.Context(), courseID, studentID, req.Grade, req.Feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Grade recorded"))
}

// GetGrade returns a student's grade in a course. Students read their
// own; the assigned lecturer reads anyone in the course.
// @Summary Get a final grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.GradeView} "Grade retrieved; null data when not yet graded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/grades/{studentId} [get]
func (c *GradeController) GetGrade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}

	var ownership appauth.OwnershipCheck
	switch claims.Role {
	case models.RoleLecturer:
		ownership = c.authzService.LecturerAssignedToCourse(claims.UserID, courseID)
	case models.RoleStudent:
		// Students may only read their own grade
		userID := claims.UserID
		ownership = func(octx context.Context) (bool, error) {
			student, err := c.userRepo.GetStudentByUserID(octx, userID)
			if err != nil {
				return false, err
			}
			return student.ID == studentID, nil
		}
	}

	allowed := []models.RoleType{models.RoleLecturer, models.RoleStudent}
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grade, err := c.gradingService.GetGrade(ctx.Request.Context(), courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade, ""))
}
