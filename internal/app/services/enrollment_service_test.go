package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

func intPtr(v int) *int { return &v }

func activeCourse(id int64, capacity *int) *models.Course {
	return &models.Course{
		ID:       id,
		Code:     "CS101",
		Title:    "Introduction to Programming",
		Credits:  5,
		Capacity: capacity,
		Status:   models.CourseActive,
	}
}

func newEnrollmentFixture(courses ...*models.Course) (*EnrollmentService, *fakeEnrollmentRepo) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo, newFakeCourseRepo(courses...), zerolog.Nop())
	return svc, repo
}

func TestEnrollCreatesEnrolledRow(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, intPtr(30)))

	enrollment, err := svc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.Status != models.EnrollmentEnrolled {
		t.Errorf("status = %s, want %s", enrollment.Status, models.EnrollmentEnrolled)
	}
	if enrollment.EnrolledAt.IsZero() {
		t.Error("EnrolledAt not set")
	}
	if enrollment.FinalGrade != nil {
		t.Error("new enrollment must not carry a grade")
	}
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, nil))

	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("first Enroll: %v", err)
	}
	_, err := svc.Enroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("second Enroll = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), 7, 99)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("Enroll = %v, want ErrCourseNotFound", err)
	}
}

func TestEnrollInactiveCourse(t *testing.T) {
	course := activeCourse(1, nil)
	course.Status = models.CourseInactive
	svc, _ := newEnrollmentFixture(course)

	_, err := svc.Enroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrCourseInactive) {
		t.Errorf("Enroll = %v, want ErrCourseInactive", err)
	}
}

func TestEnrollNilCapacityIsUnlimited(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, nil))

	for studentID := int64(1); studentID <= 200; studentID++ {
		if _, err := svc.Enroll(context.Background(), studentID, 1); err != nil {
			t.Fatalf("Enroll student %d: %v", studentID, err)
		}
	}
}

func TestEnrollCapacityUnderContention(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, intPtr(2)))

	const attempts = 5
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for studentID := int64(1); studentID <= attempts; studentID++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := svc.Enroll(context.Background(), id, 1)
			results <- err
		}(studentID)
	}
	wg.Wait()
	close(results)

	var succeeded, full int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrCourseFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 || full != 3 {
		t.Errorf("succeeded = %d, full = %d, want 2 and 3", succeeded, full)
	}

	count, err := svc.CountActive(context.Background(), 1)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if count != 2 {
		t.Errorf("CountActive = %d, want 2", count)
	}
}

func TestEnrollAgainAfterDrop(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, intPtr(1)))

	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.Drop(context.Background(), 7, 1); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Errorf("re-enroll after drop: %v", err)
	}
}

func TestDropFreesSeat(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, intPtr(1)))

	if _, err := svc.Enroll(context.Background(), 1, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), 2, 1); !errors.Is(err, apperrors.ErrCourseFull) {
		t.Fatalf("Enroll on full course = %v, want ErrCourseFull", err)
	}
	if err := svc.Drop(context.Background(), 1, 1); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), 2, 1); err != nil {
		t.Errorf("Enroll after seat freed: %v", err)
	}
}

func TestCompletedEnrollmentDoesNotHoldSeat(t *testing.T) {
	svc, repo := newEnrollmentFixture(activeCourse(1, intPtr(1)))

	enrollment, err := svc.Enroll(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	grading := NewGradingService(repo, zerolog.Nop())
	if err := grading.SetGrade(context.Background(), 1, 1, 88, nil); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}
	if got := repo.get(enrollment.ID); got.Status != models.EnrollmentCompleted {
		t.Fatalf("status after grading = %s, want %s", got.Status, models.EnrollmentCompleted)
	}
	if _, err := svc.Enroll(context.Background(), 2, 1); err != nil {
		t.Errorf("Enroll alongside completed row: %v", err)
	}
}

func TestDropWithoutEnrollment(t *testing.T) {
	svc, _ := newEnrollmentFixture(activeCourse(1, nil))

	err := svc.Drop(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("Drop = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestDropCompletedEnrollment(t *testing.T) {
	svc, repo := newEnrollmentFixture(activeCourse(1, nil))

	enrollment, err := svc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := repo.SetGrade(context.Background(), enrollment.ID, 91, nil, enrollment.EnrolledAt); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}

	err = svc.Drop(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("Drop of completed = %v, want ErrInvalidTransition", err)
	}
	if got := repo.get(enrollment.ID); got.Status != models.EnrollmentCompleted {
		t.Errorf("status changed to %s after rejected drop", got.Status)
	}
}
