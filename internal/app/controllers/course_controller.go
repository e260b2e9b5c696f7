package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/services"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
)

// CourseController handles course catalog and course enrollment operations
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course (admin only); the optional teacher must hold the teacher role
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course, "Course created"))
}

// ListCourses returns the courses visible to the caller
// @Summary List courses
// @Description Admins see every course, teachers their own, students the ones they are enrolled in
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courses, err := c.courseService.ListCourses(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}

// GetCourse returns a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, ""))
}

// UpdateCourse applies a partial update to a course
// @Summary Update course
// @Description Updates title, description or active flag; allowed for admins and the owning teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, actor, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, "Course updated"))
}

// DeleteCourse removes a course
// @Summary Delete course
// @Description Deletes a course; rejected with a conflict while classes or enrollments reference it
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has classes or enrollments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, actor, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Enroll enrolls the authenticated student in a course
// @Summary Enroll in course
// @Description Enrolls the calling student; enrolling twice returns a conflict
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=models.CourseEnrollment} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - only students may enroll"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.EnrollInCourse(ctx, actor, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Enrolled in course"))
}

// Unenroll removes the authenticated student's course enrollment
// @Summary Unenroll from course
// @Description Removes the calling student's enrollment; unenrolling twice returns not found
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Unenrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - only students may unenroll"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enroll [delete]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.UnenrollFromCourse(ctx, actor, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Unenrolled from course"))
}

// ListEnrollments returns the roster of a course
// @Summary List course enrollments
// @Description Returns the enrollments of a course; visible to admins and the owning teacher
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseEnrollment} "Enrollments"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListCourseEnrollments(ctx, actor, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, ""))
}
