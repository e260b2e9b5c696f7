package services

import (
	"context"
	"sync"
	"time"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. The enrollment fake enforces its
// uniqueness under a mutex the way the database constraint does, so the
// insert-first behavior of the services is observable in tests.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
	for _, u := range users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) List(ctx context.Context, offset uint64, limit int) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.User
	for id := int64(1); id < s.nextID; id++ {
		if user, ok := s.users[id]; ok {
			copied := *user
			all = append(all, &copied)
		}
	}
	if int(offset) >= len(all) {
		return nil, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeCourseStore struct {
	mu      sync.Mutex
	nextID  int64
	courses map[int64]*models.Course

	// enrolledCourses maps a student to the course IDs their scoped list
	// should return; restrictDelete marks courses whose delete hits the
	// foreign key restriction.
	enrolledCourses map[int64][]int64
	restrictDelete  map[int64]bool
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{
		courses:         make(map[int64]*models.Course),
		nextID:          1,
		enrolledCourses: make(map[int64][]int64),
		restrictDelete:  make(map[int64]bool),
	}
	for _, c := range courses {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) Create(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.courses {
		if existing.CourseCode == course.CourseCode {
			return apperrors.ErrCourseCodeExists
		}
	}
	course.ID = s.nextID
	s.nextID++
	copied := *course
	s.courses[course.ID] = &copied
	return nil
}

func (s *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (s *fakeCourseStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.Course
	for id := int64(1); id < s.nextID; id++ {
		if course, ok := s.courses[id]; ok {
			copied := *course
			all = append(all, &copied)
		}
	}
	return all, nil
}

func (s *fakeCourseStore) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	all, _ := s.GetAll(ctx)
	var out []*models.Course
	for _, course := range all {
		if course.TeacherID != nil && *course.TeacherID == teacherID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	// Scoped listing joins through enrollments in the real store; tests that
	// need it pre-arrange the expectation through enrolledCourses.
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Course
	for _, id := range s.enrolledCourses[studentID] {
		if course, ok := s.courses[id]; ok {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) Update(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	copied := *course
	s.courses[course.ID] = &copied
	return nil
}

func (s *fakeCourseStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if s.restrictDelete[id] {
		return apperrors.ErrCourseHasEnrollments
	}
	delete(s.courses, id)
	return nil
}

type fakeClassStore struct {
	mu      sync.Mutex
	nextID  int64
	classes map[int64]*models.Class

	// enrolledClasses maps a student to the class IDs their scoped list
	// should return.
	enrolledClasses map[int64][]int64
}

func newFakeClassStore(classes ...*models.Class) *fakeClassStore {
	s := &fakeClassStore{
		classes:         make(map[int64]*models.Class),
		nextID:          1,
		enrolledClasses: make(map[int64][]int64),
	}
	for _, c := range classes {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
		s.classes[c.ID] = c
	}
	return s
}

func (s *fakeClassStore) Create(ctx context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.classes {
		if existing.CourseID == class.CourseID &&
			existing.SectionNumber == class.SectionNumber &&
			existing.Semester == class.Semester &&
			existing.Year == class.Year {
			return apperrors.ErrClassSectionExists
		}
	}
	class.ID = s.nextID
	s.nextID++
	copied := *class
	s.classes[class.ID] = &copied
	return nil
}

func (s *fakeClassStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	class, ok := s.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	copied := *class
	return &copied, nil
}

func (s *fakeClassStore) GetAll(ctx context.Context) ([]*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.Class
	for id := int64(1); id < s.nextID; id++ {
		if class, ok := s.classes[id]; ok {
			copied := *class
			all = append(all, &copied)
		}
	}
	return all, nil
}

func (s *fakeClassStore) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Class, error) {
	all, _ := s.GetAll(ctx)
	var out []*models.Class
	for _, class := range all {
		if class.CourseID == courseID {
			out = append(out, class)
		}
	}
	return out, nil
}

func (s *fakeClassStore) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Class, error) {
	all, _ := s.GetAll(ctx)
	var out []*models.Class
	for _, class := range all {
		if class.TeacherID == teacherID {
			out = append(out, class)
		}
	}
	return out, nil
}

func (s *fakeClassStore) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Class
	for _, id := range s.enrolledClasses[studentID] {
		if class, ok := s.classes[id]; ok {
			copied := *class
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeClassStore) Update(ctx context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[class.ID]; !ok {
		return apperrors.ErrClassNotFound
	}
	copied := *class
	s.classes[class.ID] = &copied
	return nil
}

func (s *fakeClassStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(s.classes, id)
	return nil
}

type enrollmentKey struct {
	studentID int64
	targetID  int64
}

type fakeEnrollmentStore struct {
	mu          sync.Mutex
	nextID      int64
	courseRows  map[enrollmentKey]*models.CourseEnrollment
	classRows   map[enrollmentKey]*models.ClassEnrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		nextID:     1,
		courseRows: make(map[enrollmentKey]*models.CourseEnrollment),
		classRows:  make(map[enrollmentKey]*models.ClassEnrollment),
	}
}

func (s *fakeEnrollmentStore) CreateCourseEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey{enrollment.StudentID, enrollment.CourseID}
	if _, exists := s.courseRows[key]; exists {
		return apperrors.ErrAlreadyEnrolled
	}
	enrollment.ID = s.nextID
	s.nextID++
	enrollment.EnrollmentDate = time.Now()
	copied := *enrollment
	s.courseRows[key] = &copied
	return nil
}

func (s *fakeEnrollmentStore) DeleteCourseEnrollment(ctx context.Context, studentID, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey{studentID, courseID}
	if _, exists := s.courseRows[key]; !exists {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(s.courseRows, key)
	return nil
}

func (s *fakeEnrollmentStore) GetCourseEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.CourseEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.CourseEnrollment
	for key, enrollment := range s.courseRows {
		if key.targetID == courseID {
			copied := *enrollment
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) CreateClassEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey{enrollment.StudentID, enrollment.ClassID}
	if _, exists := s.classRows[key]; exists {
		return apperrors.ErrAlreadyEnrolled
	}
	enrollment.ID = s.nextID
	s.nextID++
	enrollment.EnrollmentDate = time.Now()
	copied := *enrollment
	s.classRows[key] = &copied
	return nil
}

func (s *fakeEnrollmentStore) DeleteClassEnrollment(ctx context.Context, studentID, classID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey{studentID, classID}
	if _, exists := s.classRows[key]; !exists {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(s.classRows, key)
	return nil
}

func (s *fakeEnrollmentStore) GetClassEnrollmentsByClass(ctx context.Context, classID int64) ([]*models.ClassEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ClassEnrollment
	for key, enrollment := range s.classRows {
		if key.targetID == classID {
			copied := *enrollment
			out = append(out, &copied)
		}
	}
	return out, nil
}

type tokenRecord struct {
	userID    int64
	expiry    time.Time
	isRevoked bool
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*tokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (s *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = &tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenUserID(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if record.isRevoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if record.expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return record.userID, nil
}

func (s *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.isRevoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.tokens {
		if record.userID == userID {
			record.isRevoked = true
		}
	}
	return nil
}
