package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// fakeAssignmentRepo is an in-memory IAssignmentRepository. Like the
// real table, it rejects a second submission per (assignment, student)
// pair on CreateSubmission.
type fakeAssignmentRepo struct {
	mu          sync.Mutex
	nextID      int64
	assignments map[int64]*models.Assignment
	submissions map[int64]*models.Submission
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		assignments: make(map[int64]*models.Assignment),
		submissions: make(map[int64]*models.Submission),
	}
}

func (f *fakeAssignmentRepo) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	assignment.ID = f.nextID
	copied := *assignment
	f.assignments[copied.ID] = &copied
	return nil
}

func (f *fakeAssignmentRepo) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssignmentRepo) ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Assignment
	for _, a := range f.assignments {
		if a.CourseID == courseID {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeAssignmentRepo) DeleteAssignment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.assignments[id]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	delete(f.assignments, id)
	for sid, s := range f.submissions {
		if s.AssignmentID == id {
			delete(f.submissions, sid)
		}
	}
	return nil
}

func (f *fakeAssignmentRepo) GetSubmission(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrSubmissionNotFound
}

func (f *fakeAssignmentRepo) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return apperrors.ErrAlreadySubmitted
		}
	}
	f.nextID++
	submission.ID = f.nextID
	copied := *submission
	f.submissions[copied.ID] = &copied
	return nil
}

func (f *fakeAssignmentRepo) ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Submission
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

// fakeFileStorage satisfies filestorage.FileStorage without touching disk.
type fakeFileStorage struct{}

func (fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return "/uploads/" + fileHeader.Filename, nil
}

func (fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	return "/uploads/" + path + "/" + fileHeader.Filename, nil
}

func (fakeFileStorage) DeleteFile(filePath string) error { return nil }

func (fakeFileStorage) GetFullPath(fileURL string) string { return fileURL }

func newTestAssignmentService() (*AssignmentService, *fakeAssignmentRepo) {
	repo := newFakeAssignmentRepo()
	return NewAssignmentService(repo, fakeFileStorage{}, zerolog.Nop()), repo
}

func createTestAssignment(t *testing.T, svc *AssignmentService, courseID int64) *models.Assignment {
	t.Helper()
	assignment, err := svc.Create(context.Background(), courseID, &dto.CreateAssignmentRequest{Title: "Problem set"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return assignment
}

func TestAssignmentCreateAndGet(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	got, err := svc.Get(context.Background(), 10, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CourseID != 10 || got.Title != "Problem set" {
		t.Errorf("got courseID=%d title=%q", got.CourseID, got.Title)
	}
}

func TestAssignmentGetOtherCourse(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	if _, err := svc.Get(context.Background(), 20, created.ID); !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Errorf("Get via other course: got %v, want ErrAssignmentNotFound", err)
	}
}

func TestAssignmentDelete(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	if err := svc.Delete(context.Background(), 10, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), 10, created.ID); !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Errorf("Get after delete: got %v, want ErrAssignmentNotFound", err)
	}
}

func TestAssignmentDeleteOtherCourse(t *testing.T) {
	svc, repo := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	if err := svc.Delete(context.Background(), 20, created.ID); !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Fatalf("Delete via other course: got %v, want ErrAssignmentNotFound", err)
	}
	if _, err := repo.GetAssignmentByID(context.Background(), created.ID); err != nil {
		t.Errorf("assignment was deleted through another course's URL")
	}
}

func TestSubmitAndGetSubmission(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	comment := "done"
	submission, err := svc.Submit(context.Background(), 10, created.ID, 200, &dto.SubmitAssignmentRequest{Comment: &comment}, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submission.AssignmentID != created.ID || submission.StudentID != 200 {
		t.Errorf("submission keys: assignment=%d student=%d", submission.AssignmentID, submission.StudentID)
	}

	got, err := svc.GetSubmission(context.Background(), 10, created.ID, 200)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if got.Comment == nil || *got.Comment != "done" {
		t.Errorf("comment not persisted")
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	if _, err := svc.Submit(context.Background(), 10, created.ID, 200, &dto.SubmitAssignmentRequest{}, nil); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), 10, created.ID, 200, &dto.SubmitAssignmentRequest{}, nil); !errors.Is(err, apperrors.ErrAlreadySubmitted) {
		t.Errorf("second Submit: got %v, want ErrAlreadySubmitted", err)
	}
}

func TestSubmitOtherCourse(t *testing.T) {
	svc, repo := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)

	if _, err := svc.Submit(context.Background(), 20, created.ID, 200, &dto.SubmitAssignmentRequest{}, nil); !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Fatalf("Submit via other course: got %v, want ErrAssignmentNotFound", err)
	}
	subs, err := repo.ListSubmissionsByAssignment(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ListSubmissionsByAssignment: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("submission recorded through another course's URL")
	}
}

func TestListSubmissionsOtherCourse(t *testing.T) {
	svc, _ := newTestAssignmentService()
	created := createTestAssignment(t, svc, 10)
	if _, err := svc.Submit(context.Background(), 10, created.ID, 200, &dto.SubmitAssignmentRequest{}, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.ListSubmissions(context.Background(), 20, created.ID); !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Errorf("ListSubmissions via other course: got %v, want ErrAssignmentNotFound", err)
	}

	subs, err := svc.ListSubmissions(context.Background(), 10, created.ID)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("got %d submissions, want 1", len(subs))
	}
}
