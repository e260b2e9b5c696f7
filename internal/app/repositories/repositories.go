package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	ClassRepository      *ClassRepository
	EnrollmentRepository *EnrollmentRepository
	TokenRepository      *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		ClassRepository:      NewClassRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
