package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/services"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/middleware"
)

// UserController handles user management operations
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser handles user creation by an admin
// @Summary Create a new user
// @Description Creates a user with the given role (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.CreateUser(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromUser(user), "User created"))
}

// ListUsers returns a page of users
// @Summary List users
// @Description Returns a paginated list of all users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param perPage query int false "Page size" default(20) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	var query dto.UserListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	users, pagination, err := c.userService.ListUsers(ctx, actor, query.Page, query.PerPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.FromUser(user))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, ""))
}

// GetUser returns a single user
// @Summary Get user by ID
// @Description Returns a user; admins may view anyone, others only themselves
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx, actor, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromUser(user), ""))
}

// UpdateUser applies a partial update to a user
// @Summary Update user
// @Description Updates user fields; admins may update anyone and any field, others only themselves and never their role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUser(ctx, actor, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromUser(user), "User updated"))
}

// UpdateProfile applies the self-service profile update
// @Summary Update own profile
// @Description Updates the authenticated user's own profile; role cannot be changed
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromUser(user), "Profile updated"))
}

// DeleteUser removes a user
// @Summary Delete user
// @Description Deletes a user (admin only); users referenced by courses, classes or enrollments are rejected
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User has associated records"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, actor, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
