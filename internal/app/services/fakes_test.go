package services

import (
	"context"
	"sync"
	"time"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// fakeEnrollmentRepo is an in-memory IEnrollmentRepository. Like the
// real table, it rejects a second non-dropped row per (student, course)
// pair on Create.
type fakeEnrollmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{rows: make(map[int64]*models.Enrollment)}
}

func (f *fakeEnrollmentRepo) GetActiveByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status != models.EnrollmentDropped {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentRepo) CountEnrolled(ctx context.Context, courseID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, e := range f.rows {
		if e.CourseID == courseID && e.Status == models.EnrollmentEnrolled {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID && e.Status != models.EnrollmentDropped {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	f.nextID++
	enrollment.ID = f.nextID
	copied := *enrollment
	f.rows[copied.ID] = &copied
	return nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEnrollmentRepo) SetGrade(ctx context.Context, id int64, grade float64, feedback *string, gradedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.FinalGrade = &grade
	e.Feedback = feedback
	e.GradedAt = &gradedAt
	e.Status = models.EnrollmentCompleted
	return nil
}

func (f *fakeEnrollmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range f.rows {
		if e.StudentID == studentID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range f.rows {
		if e.CourseID == courseID && e.Status != models.EnrollmentDropped {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) get(id int64) *models.Enrollment {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return nil
	}
	copied := *e
	return &copied
}

// fakeCourseRepo is an in-memory ICourseRepository
type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[int64]*models.Course
}

func newFakeCourseRepo(courses ...*models.Course) *fakeCourseRepo {
	f := &fakeCourseRepo{courses: make(map[int64]*models.Course)}
	for _, c := range courses {
		f.courses[c.ID] = c
	}
	return f
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

// fakeUserRepo is an in-memory IUserRepository keyed by lowercase email
type fakeUserRepo struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	students  map[int64]*models.Student
	lecturers map[int64]*models.Lecturer
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[int64]*models.User),
		students:  make(map[int64]*models.Student),
		lecturers: make(map[int64]*models.Lecturer),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[copied.ID] = &copied
	return copied.ID, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) SetUserActive(ctx context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) UpdateUserName(ctx context.Context, id int64, firstName, lastName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) ListUsersByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.User
	for _, u := range f.users {
		if u.Role == role {
			copied := *u
			all = append(all, &copied)
		}
	}
	total := int64(len(all))
	if int(offset) >= len(all) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeUserRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	student.ID = f.nextID
	copied := *student
	f.students[copied.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.UserID == userID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeUserRepo) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeUserRepo) CreateLecturer(ctx context.Context, lecturer *models.Lecturer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	lecturer.ID = f.nextID
	copied := *lecturer
	f.lecturers[copied.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lecturers {
		if l.UserID == userID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, apperrors.ErrLecturerNotFound
}

func (f *fakeUserRepo) GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lecturers[id]
	if !ok {
		return nil, apperrors.ErrLecturerNotFound
	}
	copied := *l
	return &copied, nil
}
