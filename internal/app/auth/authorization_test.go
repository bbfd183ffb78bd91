package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	pkgAuth "github.com/nipunivithana/cms-backend/internal/pkg/auth"
)

// stubUserRepo resolves role profiles from fixed maps; everything else
// is unused by the authorization paths.
type stubUserRepo struct {
	students  map[int64]*models.Student
	lecturers map[int64]*models.Lecturer
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) SetUserActive(ctx context.Context, id int64, active bool) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) UpdateUserName(ctx context.Context, id int64, firstName, lastName string) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) ListUsersByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, st := range s.students {
		if st.UserID == userID {
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *stubUserRepo) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

func (s *stubUserRepo) CreateLecturer(ctx context.Context, lecturer *models.Lecturer) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error) {
	for _, l := range s.lecturers {
		if l.UserID == userID {
			return l, nil
		}
	}
	return nil, apperrors.ErrLecturerNotFound
}

func (s *stubUserRepo) GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	l, ok := s.lecturers[id]
	if !ok {
		return nil, apperrors.ErrLecturerNotFound
	}
	return l, nil
}

type stubCourseRepo struct {
	courses map[int64]*models.Course
}

func (s *stubCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

type stubEnrollmentRepo struct {
	enrollments []*models.Enrollment
}

func (s *stubEnrollmentRepo) GetActiveByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status != models.EnrollmentDropped {
			return e, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (s *stubEnrollmentRepo) CountEnrolled(ctx context.Context, courseID int64) (int, error) {
	return 0, nil
}

func (s *stubEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return errors.New("not implemented")
}

func (s *stubEnrollmentRepo) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	return errors.New("not implemented")
}

func (s *stubEnrollmentRepo) SetGrade(ctx context.Context, id int64, grade float64, feedback *string, gradedAt time.Time) error {
	return errors.New("not implemented")
}

func (s *stubEnrollmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return nil, nil
}

func (s *stubEnrollmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return nil, nil
}

func int64Ptr(v int64) *int64 { return &v }

// Fixture layout: course 10 is taught by lecturer 100 (user 1), course
// 20 is unassigned. Student 200 (user 2) is enrolled in course 10,
// student 201 (user 3) dropped it, student 202 (user 4) completed it.
func newAuthzFixture() *AuthorizationService {
	users := &stubUserRepo{
		students: map[int64]*models.Student{
			200: {ID: 200, UserID: 2, StudentNumber: "20240001"},
			201: {ID: 201, UserID: 3, StudentNumber: "20240002"},
			202: {ID: 202, UserID: 4, StudentNumber: "20240003"},
		},
		lecturers: map[int64]*models.Lecturer{
			100: {ID: 100, UserID: 1, Department: "Computer Science"},
			101: {ID: 101, UserID: 5, Department: "Mathematics"},
		},
	}
	courses := &stubCourseRepo{
		courses: map[int64]*models.Course{
			10: {ID: 10, Code: "CS101", Status: models.CourseActive, LecturerID: int64Ptr(100)},
			20: {ID: 20, Code: "CS201", Status: models.CourseActive},
		},
	}
	enrollments := &stubEnrollmentRepo{
		enrollments: []*models.Enrollment{
			{ID: 1, StudentID: 200, CourseID: 10, Status: models.EnrollmentEnrolled},
			{ID: 2, StudentID: 201, CourseID: 10, Status: models.EnrollmentDropped},
			{ID: 3, StudentID: 202, CourseID: 10, Status: models.EnrollmentCompleted},
		},
	}
	return NewAuthorizationService(users, courses, enrollments)
}

func claimsFor(userID int64, role models.RoleType) *pkgAuth.Claims {
	return &pkgAuth.Claims{UserID: userID, Email: "user@cms.local", Role: role}
}

func TestAuthorizeRoleGate(t *testing.T) {
	svc := newAuthzFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		claims  *pkgAuth.Claims
		allowed []models.RoleType
		wantErr error
	}{
		{"admin on admin endpoint", claimsFor(9, models.RoleAdmin), []models.RoleType{models.RoleAdmin}, nil},
		{"student on admin endpoint", claimsFor(2, models.RoleStudent), []models.RoleType{models.RoleAdmin}, apperrors.ErrForbiddenRole},
		{"admin on lecturer endpoint gets no implicit pass", claimsFor(9, models.RoleAdmin), []models.RoleType{models.RoleLecturer}, apperrors.ErrForbiddenRole},
		{"lecturer among several allowed roles", claimsFor(1, models.RoleLecturer), []models.RoleType{models.RoleAdmin, models.RoleLecturer}, nil},
		{"nil claims", nil, []models.RoleType{models.RoleAdmin}, apperrors.ErrForbiddenRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Authorize(ctx, tt.claims, tt.allowed, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeOwnershipDenied(t *testing.T) {
	svc := newAuthzFixture()
	ctx := context.Background()

	claims := claimsFor(5, models.RoleLecturer)
	err := svc.Authorize(ctx, claims, []models.RoleType{models.RoleLecturer}, svc.LecturerAssignedToCourse(claims.UserID, 10))
	if !errors.Is(err, apperrors.ErrForbiddenResource) {
		t.Errorf("Authorize = %v, want ErrForbiddenResource", err)
	}
}

func TestLecturerAssignedToCourse(t *testing.T) {
	svc := newAuthzFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   int64
		courseID int64
		want     bool
	}{
		{"assigned lecturer", 1, 10, true},
		{"other lecturer", 5, 10, false},
		{"unassigned course owned by nobody", 1, 20, false},
		{"user without lecturer profile", 2, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.LecturerAssignedToCourse(tt.userID, tt.courseID)(ctx)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := svc.LecturerAssignedToCourse(1, 99)(ctx); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("unknown course = %v, want ErrCourseNotFound", err)
	}
}

func TestStudentActiveInCourse(t *testing.T) {
	svc := newAuthzFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   int64
		courseID int64
		want     bool
	}{
		{"enrolled student", 2, 10, true},
		{"dropped student denied", 3, 10, false},
		{"completed student still a participant", 4, 10, true},
		{"student not in course", 2, 20, false},
		{"user without student profile", 1, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.StudentActiveInCourse(tt.userID, tt.courseID)(ctx)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseParticipant(t *testing.T) {
	svc := newAuthzFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		claims *pkgAuth.Claims
		want   bool
	}{
		{"assigned lecturer", claimsFor(1, models.RoleLecturer), true},
		{"enrolled student", claimsFor(2, models.RoleStudent), true},
		{"dropped student", claimsFor(3, models.RoleStudent), false},
		{"admin is not a participant", claimsFor(9, models.RoleAdmin), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CourseParticipant(tt.claims, 10)(ctx)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
