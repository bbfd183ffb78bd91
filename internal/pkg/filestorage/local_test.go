package filestorage

import (
	"path/filepath"
	"testing"
)

func TestGetFullPath(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	cases := []struct {
		stored string
		want   string
	}{
		{"uploads/abc.pdf", filepath.Join(base, "abc.pdf")},
		{"uploads/submissions/assignment_3/abc.pdf", filepath.Join(base, "submissions", "assignment_3", "abc.pdf")},
		{"", ""},
		{"uploads/", ""},
		{"uploads/../../etc/passwd", ""},
	}
	for _, tc := range cases {
		if got := ls.GetFullPath(tc.stored); got != tc.want {
			t.Errorf("GetFullPath(%q) = %q, want %q", tc.stored, got, tc.want)
		}
	}
}

func TestGetFullPathWithBaseURL(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	got := ls.GetFullPath("http://localhost:8080/uploads/materials/doc.pdf")
	want := filepath.Join(base, "materials", "doc.pdf")
	if got != want {
		t.Errorf("GetFullPath = %q, want %q", got, want)
	}
}

func TestDeleteFileMissingIsNoError(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if err := ls.DeleteFile("uploads/never-existed.pdf"); err != nil {
		t.Errorf("DeleteFile(missing) = %v, want nil", err)
	}
}
