package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/services"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController   *AuthController
	UserController   *UserController
	CourseController *CourseController
	ClassController  *ClassController
}

// NewControllers wires services into controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:   NewAuthController(svcs.AuthService),
		UserController:   NewUserController(svcs.UserService),
		CourseController: NewCourseController(svcs.CourseService, svcs.EnrollmentService),
		ClassController:  NewClassController(svcs.ClassService, svcs.EnrollmentService),
	}
}

// parseIDParam extracts a positive int64 path parameter, responding with a
// 400 itself when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// actorID extracts the authenticated user's ID, responding with a 401 itself
// when the auth middleware did not run.
func actorID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}
