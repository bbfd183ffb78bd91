package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newGradingFixture(t *testing.T) (*GradingService, *EnrollmentService, *fakeEnrollmentRepo) {
	t.Helper()
	repo := newFakeEnrollmentRepo()
	enrollSvc := NewEnrollmentService(repo, newFakeCourseRepo(activeCourse(1, nil)), zerolog.Nop())
	return NewGradingService(repo, zerolog.Nop()), enrollSvc, repo
}

func TestSetGradeMovesRowToCompleted(t *testing.T) {
	grading, enrollSvc, repo := newGradingFixture(t)

	enrollment, err := enrollSvc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := grading.SetGrade(context.Background(), 1, 7, 85.5, strPtr("solid work")); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}

	got := repo.get(enrollment.ID)
	if got.Status != models.EnrollmentCompleted {
		t.Errorf("status = %s, want %s", got.Status, models.EnrollmentCompleted)
	}
	if got.FinalGrade == nil || *got.FinalGrade != 85.5 {
		t.Errorf("FinalGrade = %v, want 85.5", got.FinalGrade)
	}
	if got.Feedback == nil || *got.Feedback != "solid work" {
		t.Errorf("Feedback = %v, want feedback text", got.Feedback)
	}
	if got.GradedAt == nil {
		t.Error("GradedAt not set")
	}
}

func TestSetGradeRejectsOutOfRange(t *testing.T) {
	grading, enrollSvc, repo := newGradingFixture(t)

	enrollment, err := enrollSvc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	for _, grade := range []float64{-1, 100.5, 150} {
		err := grading.SetGrade(context.Background(), 1, 7, grade, nil)
		if !errors.Is(err, apperrors.ErrInvalidGrade) {
			t.Errorf("SetGrade(%v) = %v, want ErrInvalidGrade", grade, err)
		}
	}

	got := repo.get(enrollment.ID)
	if got.Status != models.EnrollmentEnrolled || got.FinalGrade != nil {
		t.Errorf("rejected grade mutated state: status = %s, grade = %v", got.Status, got.FinalGrade)
	}
}

func TestSetGradeBoundaryValues(t *testing.T) {
	for _, grade := range []float64{0, 100} {
		grading, enrollSvc, repo := newGradingFixture(t)
		enrollment, err := enrollSvc.Enroll(context.Background(), 7, 1)
		if err != nil {
			t.Fatalf("Enroll: %v", err)
		}
		if err := grading.SetGrade(context.Background(), 1, 7, grade, nil); err != nil {
			t.Errorf("SetGrade(%v) = %v, want nil", grade, err)
		}
		if got := repo.get(enrollment.ID); got.FinalGrade == nil || *got.FinalGrade != grade {
			t.Errorf("FinalGrade = %v, want %v", got.FinalGrade, grade)
		}
	}
}

func TestSetGradeWithoutEnrollment(t *testing.T) {
	grading, _, _ := newGradingFixture(t)

	err := grading.SetGrade(context.Background(), 1, 7, 70, nil)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("SetGrade = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestRegradeOverwrites(t *testing.T) {
	grading, enrollSvc, repo := newGradingFixture(t)

	enrollment, err := enrollSvc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := grading.SetGrade(context.Background(), 1, 7, 60, strPtr("first pass")); err != nil {
		t.Fatalf("first SetGrade: %v", err)
	}
	if err := grading.SetGrade(context.Background(), 1, 7, 72, strPtr("after appeal")); err != nil {
		t.Fatalf("second SetGrade: %v", err)
	}

	got := repo.get(enrollment.ID)
	if got.FinalGrade == nil || *got.FinalGrade != 72 {
		t.Errorf("FinalGrade = %v, want 72", got.FinalGrade)
	}
	if got.Feedback == nil || *got.Feedback != "after appeal" {
		t.Errorf("Feedback = %v, want replacement text", got.Feedback)
	}
}

func TestGetGradeUngraded(t *testing.T) {
	grading, enrollSvc, _ := newGradingFixture(t)

	if _, err := enrollSvc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	view, err := grading.GetGrade(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("GetGrade: %v", err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil for ungraded enrollment", view)
	}
}

func TestGetGradeWithoutEnrollment(t *testing.T) {
	grading, _, _ := newGradingFixture(t)

	_, err := grading.GetGrade(context.Background(), 1, 7)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("GetGrade = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestGetGradeReturnsView(t *testing.T) {
	grading, enrollSvc, _ := newGradingFixture(t)

	if _, err := enrollSvc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := grading.SetGrade(context.Background(), 1, 7, 93, strPtr("excellent")); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}

	view, err := grading.GetGrade(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("GetGrade: %v", err)
	}
	if view == nil {
		t.Fatal("view is nil for graded enrollment")
	}
	if view.Grade != 93 {
		t.Errorf("Grade = %v, want 93", view.Grade)
	}
	if view.Feedback == nil || *view.Feedback != "excellent" {
		t.Errorf("Feedback = %v, want feedback text", view.Feedback)
	}
	if view.GradedAt.IsZero() {
		t.Error("GradedAt not populated")
	}
}

func TestAverageGradeSkipsUngradedAndDropped(t *testing.T) {
	grading, enrollSvc, _ := newGradingFixture(t)

	for studentID := int64(1); studentID <= 4; studentID++ {
		if _, err := enrollSvc.Enroll(context.Background(), studentID, 1); err != nil {
			t.Fatalf("Enroll student %d: %v", studentID, err)
		}
	}
	if err := grading.SetGrade(context.Background(), 1, 1, 80, nil); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}
	if err := grading.SetGrade(context.Background(), 1, 2, 60, nil); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}
	// Student 3 stays ungraded, student 4 drops
	if err := enrollSvc.Drop(context.Background(), 4, 1); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	avg, err := grading.AverageGrade(context.Background(), 1)
	if err != nil {
		t.Fatalf("AverageGrade: %v", err)
	}
	if avg == nil || *avg != 70 {
		t.Errorf("AverageGrade = %v, want 70", avg)
	}
}

func TestAverageGradeNilWhenNobodyGraded(t *testing.T) {
	grading, enrollSvc, _ := newGradingFixture(t)

	if _, err := enrollSvc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	avg, err := grading.AverageGrade(context.Background(), 1)
	if err != nil {
		t.Fatalf("AverageGrade: %v", err)
	}
	if avg != nil {
		t.Errorf("AverageGrade = %v, want nil", *avg)
	}
}
