package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/controllers"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrls.AuthController.Login)
		auth.POST("/refresh", ctrls.AuthController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrls.AuthController.Logout)
		authenticated.GET("/auth/me", ctrls.AuthController.GetCurrentUser)

		// Fine-grained checks (self-access, course ownership) run in the
		// services against the stored user, so most routes carry no role gate
		// here. Policy decisions surface as 403 from the service layer.
		users := authenticated.Group("/users")
		{
			users.GET("/me", ctrls.AuthController.GetCurrentUser)
			users.PUT("/me", ctrls.UserController.UpdateProfile)
			users.GET("/:id", ctrls.UserController.GetUser)
			users.PUT("/:id", ctrls.UserController.UpdateUser)

			// Admin-only user management is additionally gated on the token
			// role; the service still authorizes against the stored user.
			adminUsers := users.Group("")
			adminUsers.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				adminUsers.GET("", ctrls.UserController.ListUsers)
				adminUsers.POST("", ctrls.UserController.CreateUser)
				adminUsers.DELETE("/:id", ctrls.UserController.DeleteUser)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", ctrls.CourseController.ListCourses)
			courses.POST("", ctrls.CourseController.CreateCourse)
			courses.GET("/:id", ctrls.CourseController.GetCourse)
			courses.PUT("/:id", ctrls.CourseController.UpdateCourse)
			courses.DELETE("/:id", ctrls.CourseController.DeleteCourse)

			courses.GET("/:id/classes", ctrls.ClassController.ListCourseClasses)

			courses.POST("/:id/enroll", ctrls.CourseController.Enroll)
			courses.DELETE("/:id/enroll", ctrls.CourseController.Unenroll)
			courses.GET("/:id/enrollments", ctrls.CourseController.ListEnrollments)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", ctrls.ClassController.ListClasses)
			classes.POST("", ctrls.ClassController.CreateClass)
			classes.GET("/:id", ctrls.ClassController.GetClass)
			classes.PUT("/:id", ctrls.ClassController.UpdateClass)
			classes.DELETE("/:id", ctrls.ClassController.DeleteClass)

			classes.POST("/:id/enroll", ctrls.ClassController.Enroll)
			classes.DELETE("/:id/enroll", ctrls.ClassController.Unenroll)
			classes.GET("/:id/enrollments", ctrls.ClassController.ListEnrollments)
		}
	}
}
