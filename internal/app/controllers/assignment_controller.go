package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/nipunivithana/cms-backend/internal/app/auth"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
)

// AssignmentController handles assignment and submission endpoints
type AssignmentController struct {
	assignmentService *services.AssignmentService
	userRepo          repositories.IUserRepository
	authzService      *appauth.AuthorizationService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService, userRepo repositories.IUserRepository, authzService *appauth.AuthorizationService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		userRepo:          userRepo,
		authzService:      authzService,
	}
}

func (c *AssignmentController) authorizeLecturer(ctx *gin.Context, courseID int64) bool {
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

func (c *AssignmentController) authorizeParticipant(ctx *gin.Context, courseID int64) bool {
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

// Create adds an assignment to a course
// @Summary Create an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateAssignmentRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.Assignment} "Assignment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeLecturer(ctx, courseID) {
		return
	}

	var req dto.CreateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.Create(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Assignment created"))
}

// List returns the assignments of a course
// @Summary List course assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Assignment} "Assignments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeParticipant(ctx, courseID) {
		return
	}

	assignments, err := c.assignmentService.ListForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments, ""))
}

// Delete removes an assignment and its submissions
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse "Assignment deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments/{assignmentId} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}
	if !c.authorizeLecturer(ctx, courseID) {
		return
	}

	if err := c.assignmentService.Delete(ctx.Request.Context(), courseID, assignmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Assignment deleted"))
}

// Submit records the acting student's submission
// @Summary Submit an assignment
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Param comment formData string false "Submission comment"
// @Param file formData file false "Submission file"
// @Success 201 {object} dto.APIResponse{data=models.Submission} "Submission recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments/{assignmentId}/submissions [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}
	allowed := []models.RoleType{models.RoleStudent}
	ownership := c.authzService.StudentActiveInCourse(claims.UserID, courseID)
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.userRepo.GetStudentByUserID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	comment := ctx.PostForm("comment")
	req := &dto.SubmitAssignmentRequest{}
	if comment != "" {
		req.Comment = &comment
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	submission, err := c.assignmentService.Submit(ctx.Request.Context(), courseID, assignmentID, student.ID, req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(submission, "Submission recorded"))
}

// MySubmission returns the acting student's own submission
// @Summary Get own submission
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.Submission} "Submission retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments/{assignmentId}/submissions/me [get]
func (c *AssignmentController) MySubmission(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}
	allowed := []models.RoleType{models.RoleStudent}
	ownership := c.authzService.StudentActiveInCourse(claims.UserID, courseID)
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.userRepo.GetStudentByUserID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	submission, err := c.assignmentService.GetSubmission(ctx.Request.Context(), courseID, assignmentID, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission, ""))
}

// Submissions lists all submissions to an assignment
// @Summary List assignment submissions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Submission} "Submissions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned lecturer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/assignments/{assignmentId}/submissions [get]
func (c *AssignmentController) Submissions(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}
	if !c.authorizeLecturer(ctx, courseID) {
		return
	}

	submissions, err := c.assignmentService.ListSubmissions(ctx.Request.Context(), courseID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submissions, ""))
}
