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

// EnrollmentController handles enrollment and roster endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	userRepo          repositories.IUserRepository
	authzService      *appauth.AuthorizationService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, userRepo repositories.IUserRepository, authzService *appauth.AuthorizationService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		userRepo:          userRepo,
		authzService:      authzService,
	}
}

// studentID resolves the acting user's student profile
func (c *EnrollmentController) studentID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return 0, false
	}
	student, err := c.userRepo.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return student.ID, true
}

// Enroll enrolls the acting student into a course
// @Summary Enroll in a course
// @Description Creates an enrollment if the course is active, has a free seat and the student is not already in it
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled, course inactive or course full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Enrolled in course"))
}

// Drop drops the acting student's enrollment in a course
// @Summary Drop a course
// @Description Moves the student's enrollment to dropped; completed courses cannot be dropped
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Dropped"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Completed enrollment cannot be dropped"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{courseId} [delete]
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Drop(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course dropped"))
}

// MyEnrollments lists the acting student's enrollments
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentView} "Enrollments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/me [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	views := make([]*dto.EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		view := &dto.EnrollmentView{
			ID:         e.ID,
			CourseID:   e.CourseID,
			Status:     string(e.Status),
			EnrolledAt: e.EnrolledAt,
			FinalGrade: e.FinalGrade,
			Feedback:   e.Feedback,
			GradedAt:   e.GradedAt,
		}
		if e.Course != nil {
			view.CourseCode = e.Course.Code
			view.CourseName = e.Course.Title
			view.Credits = e.Course.Credits
		}
		views = append(views, view)
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(views, ""))
}

// Roster lists the non-dropped enrollments of a course for its assigned
// lecturer or an admin
// @Summary Get a course roster
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RosterEntry} "Roster retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/roster [get]
func (c *EnrollmentController) Roster(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}

	var ownership appauth.OwnershipCheck
	if claims.Role == models.RoleLecturer {
		ownership = c.authzService.LecturerAssignedToCourse(claims.UserID, courseID)
	}
	allowed := []models.RoleType{models.RoleAdmin, models.RoleLecturer}
	if err := c.authzService.Authorize(ctx.Request.Context(), claims, allowed, ownership); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entries := make([]*dto.RosterEntry, 0, len(enrollments))
	for _, e := range enrollments {
		entry := &dto.RosterEntry{
			EnrollmentID: e.ID,
			StudentID:    e.StudentID,
			Status:       string(e.Status),
			EnrolledAt:   e.EnrolledAt,
			FinalGrade:   e.FinalGrade,
			GradedAt:     e.GradedAt,
		}
		if e.Student != nil {
			entry.StudentNumber = e.Student.StudentNumber
			if e.Student.User != nil {
				entry.FirstName = e.Student.User.FirstName
				entry.LastName = e.Student.User.LastName
				entry.Email = e.Student.User.Email
			}
		}
		entries = append(entries, entry)
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries, ""))
}
