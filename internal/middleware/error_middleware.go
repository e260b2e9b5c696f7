package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Every
// controller funnels its service errors through here so status codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404 Not Found
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrClassNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Class not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 409 Conflict
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrCourseCodeExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course code already exists")
	case errors.Is(err, apperrors.ErrClassSectionExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Class section already exists for this course and term")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already enrolled")
	case errors.Is(err, apperrors.ErrCourseHasEnrollments):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course has classes or enrollments and cannot be deleted")
	case errors.Is(err, apperrors.ErrClassHasEnrollments):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Class has enrollments and cannot be deleted")
	case errors.Is(err, apperrors.ErrUserHasRelations):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User has associated records and cannot be deleted")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, errMessage(err, "Conflict"))

	// 403 Forbidden
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// 401 Unauthorized
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")

	// 400 Bad Request
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, errMessage(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, errMessage(err, "Bad request"))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

// errMessage prefers the wrapped CustomError message when one is present.
func errMessage(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
