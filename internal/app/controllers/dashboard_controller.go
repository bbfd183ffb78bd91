package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/app/services"
	"github.com/nipunivithana/cms-backend/internal/middleware"
)

// DashboardController handles the role dashboards
type DashboardController struct {
	dashboardService *services.DashboardService
	courseService    *services.CourseService
	userRepo         repositories.IUserRepository
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, courseService *services.CourseService, userRepo repositories.IUserRepository) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		courseService:    courseService,
		userRepo:         userRepo,
	}
}

// Admin returns system-wide totals
// @Summary Admin dashboard
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboard} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dashboard, err := c.dashboardService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard, ""))
}

// Student returns the acting student's standing
// @Summary Student dashboard
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboard} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}

	student, err := c.userRepo.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	dashboard, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard, ""))
}

// MyCourses returns the acting lecturer's courses with stats
// @Summary Lecturer course overview
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseStats} "Courses retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/lecturer [get]
func (c *DashboardController) MyCourses(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errNoIdentity)
		return
	}

	lecturer, err := c.userRepo.GetLecturerByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.courseService.LecturerCourses(ctx.Request.Context(), lecturer.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}
