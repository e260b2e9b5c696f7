package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/services"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
)

// ClassController handles class section and class enrollment operations
type ClassController struct {
	classService      *services.ClassService
	enrollmentService *services.EnrollmentService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService, enrollmentService *services.EnrollmentService) *ClassController {
	return &ClassController{
		classService:      classService,
		enrollmentService: enrollmentService,
	}
}

// CreateClass handles class section creation
// @Summary Create a new class
// @Description Creates a class section of a course (admin only)
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Section already exists for this course and term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	class, err := c.classService.CreateClass(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(class, "Class created"))
}

// ListClasses returns the classes visible to the caller
// @Summary List classes
// @Description Admins see every class, teachers the sections they teach, students the ones they are enrolled in
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classes, err := c.classService.ListClasses(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes, ""))
}

// GetClass returns a class by ID
// @Summary Get class by ID
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, ""))
}

// UpdateClass applies a partial update to a class
// @Summary Update class
// @Description Updates section fields (admin only; the assigned teacher may not modify the section)
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Section already exists for this course and term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	class, err := c.classService.UpdateClass(ctx, actor, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, "Class updated"))
}

// DeleteClass removes a class
// @Summary Delete class
// @Description Deletes a class (admin only); rejected with a conflict while enrollments reference it
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "Class deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Class has enrollments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx, actor, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Enroll enrolls the authenticated student in a class
// @Summary Enroll in class
// @Description Enrolls the calling student in a class section; enrolling twice returns a conflict
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 201 {object} dto.APIResponse{data=models.ClassEnrollment} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - only students may enroll"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/enroll [post]
func (c *ClassController) Enroll(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.EnrollInClass(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Enrolled in class"))
}

// Unenroll removes the authenticated student's class enrollment
// @Summary Unenroll from class
// @Description Removes the calling student's class enrollment; unenrolling twice returns not found
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse "Unenrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - only students may unenroll"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/enroll [delete]
func (c *ClassController) Unenroll(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.UnenrollFromClass(ctx, actor, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Unenrolled from class"))
}

// ListEnrollments returns the roster of a class
// @Summary List class enrollments
// @Description Returns the enrollments of a class section; visible to admins and the assigned teacher
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ClassEnrollment} "Enrollments"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/enrollments [get]
func (c *ClassController) ListEnrollments(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListClassEnrollments(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, ""))
}

// ListCourseClasses returns the sections of a course
// @Summary List classes of a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/classes [get]
func (c *ClassController) ListCourseClasses(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	classes, err := c.classService.ListClassesByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes, ""))
}
