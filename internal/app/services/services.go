package services

import (
	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/repositories"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CourseService     *CourseService
	ClassService      *ClassService
	EnrollmentService *EnrollmentService
}

// NewServices wires repositories into services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	authzService := authz.NewAuthorizationService(repos.UserRepository)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:       NewUserService(repos.UserRepository, authzService),
		CourseService:     NewCourseService(repos.CourseRepository, repos.UserRepository, authzService),
		ClassService:      NewClassService(repos.ClassRepository, repos.CourseRepository, repos.UserRepository, authzService),
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository, repos.CourseRepository, repos.ClassRepository, authzService),
	}
}
