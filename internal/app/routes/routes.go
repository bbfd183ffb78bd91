package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/controllers"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/middleware"
)

// Controllers bundles everything SetupRouter mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Admin      *controllers.AdminController
	Degree     *controllers.DegreeController
	Course     *controllers.CourseController
	Enrollment *controllers.EnrollmentController
	Grade      *controllers.GradeController
	Material   *controllers.MaterialController
	Assignment *controllers.AssignmentController
	Dashboard  *controllers.DashboardController
}

// SetupRouter configures all application routes. Role gates are route
// level; ownership checks run inside the handlers that need them.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		authenticated.GET("/auth/me", c.Auth.GetProfile)
		authenticated.PUT("/auth/me", c.Auth.UpdateProfile)

		// Degrees: reads open to every authenticated role, writes admin-only
		degrees := authenticated.Group("/degrees")
		{
			degrees.GET("", c.Degree.ListDegrees)
			degrees.GET("/:id", c.Degree.GetDegree)

			degreesAdmin := degrees.Group("")
			degreesAdmin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
			{
				degreesAdmin.POST("", c.Degree.CreateDegree)
				degreesAdmin.PUT("/:id", c.Degree.UpdateDegree)
				degreesAdmin.DELETE("/:id", c.Degree.DeleteDegree)
			}
		}

		// Courses
		courses := authenticated.Group("/courses")
		{
			// Catalog is open to students and admins
			catalog := courses.Group("")
			catalog.Use(authMiddleware.RolesRequired(models.RoleAdmin, models.RoleStudent))
			{
				catalog.GET("/catalog", c.Course.Catalog)
			}

			// Detail enforces participation inside the handler
			courses.GET("/:id", c.Course.GetCourse)

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
			{
				coursesAdmin.GET("", c.Course.ListCourses)
				coursesAdmin.POST("", c.Course.CreateCourse)
				coursesAdmin.PUT("/:id", c.Course.UpdateCourse)
				coursesAdmin.PUT("/:id/lecturer", c.Course.AssignLecturer)
				coursesAdmin.DELETE("/:id", c.Course.DeleteCourse)
			}

			// Roster: admin or the assigned lecturer (checked in handler)
			courses.GET("/:id/roster", c.Enrollment.Roster)

			// Grades: lecturer writes, lecturer/student reads (checked in handler)
			courses.PUT("/:id/grades/:studentId", c.Grade.SetGrade)
			courses.GET("/:id/grades/:studentId", c.Grade.GetGrade)

			// Materials
			courses.POST("/:id/materials", c.Material.Upload)
			courses.GET("/:id/materials", c.Material.List)
			courses.GET("/:id/materials/:materialId", c.Material.Download)
			courses.DELETE("/:id/materials/:materialId", c.Material.Delete)

			// Assignments and submissions
			courses.POST("/:id/assignments", c.Assignment.Create)
			courses.GET("/:id/assignments", c.Assignment.List)
			courses.DELETE("/:id/assignments/:assignmentId", c.Assignment.Delete)
			courses.POST("/:id/assignments/:assignmentId/submissions", c.Assignment.Submit)
			courses.GET("/:id/assignments/:assignmentId/submissions", c.Assignment.Submissions)
			courses.GET("/:id/assignments/:assignmentId/submissions/me", c.Assignment.MySubmission)
		}

		// Enrollments (student self-service)
		enrollments := authenticated.Group("/enrollments")
		enrollments.Use(authMiddleware.RolesRequired(models.RoleStudent))
		{
			enrollments.POST("", c.Enrollment.Enroll)
			enrollments.GET("/me", c.Enrollment.MyEnrollments)
			enrollments.DELETE("/:courseId", c.Enrollment.Drop)
		}

		// Dashboards
		dashboard := authenticated.Group("/dashboard")
		{
			dashboardAdmin := dashboard.Group("")
			dashboardAdmin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
			{
				dashboardAdmin.GET("/admin", c.Dashboard.Admin)
			}

			dashboardLecturer := dashboard.Group("")
			dashboardLecturer.Use(authMiddleware.RolesRequired(models.RoleLecturer))
			{
				dashboardLecturer.GET("/lecturer", c.Dashboard.MyCourses)
			}

			dashboardStudent := dashboard.Group("")
			dashboardStudent.Use(authMiddleware.RolesRequired(models.RoleStudent))
			{
				dashboardStudent.GET("/student", c.Dashboard.Student)
			}
		}

		// Account administration
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
		{
			admin.GET("/users", c.Admin.ListUsers)
			admin.POST("/users/:id/activate", c.Admin.ActivateUser)
			admin.POST("/users/:id/deactivate", c.Admin.DeactivateUser)
		}
	}
}
