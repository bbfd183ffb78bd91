package validation

import "testing"

func TestValidGrade(t *testing.T) {
	valid := []float64{0, 0.5, 50, 99.9, 100}
	for _, g := range valid {
		if !ValidGrade(g) {
			t.Errorf("ValidGrade(%v) = false, want true", g)
		}
	}

	invalid := []float64{-0.1, -50, 100.1, 1000}
	for _, g := range invalid {
		if ValidGrade(g) {
			t.Errorf("ValidGrade(%v) = true, want false", g)
		}
	}
}

func TestStudentNumberPattern(t *testing.T) {
	valid := []string{"20240001", "00000000"}
	for _, n := range valid {
		if !CompiledPatterns.StudentNumber.MatchString(n) {
			t.Errorf("%q rejected, want accepted", n)
		}
	}

	invalid := []string{"", "1234567", "123456789", "2024000a", "2024 001"}
	for _, n := range invalid {
		if CompiledPatterns.StudentNumber.MatchString(n) {
			t.Errorf("%q accepted, want rejected", n)
		}
	}
}

func TestCourseCodePattern(t *testing.T) {
	valid := []string{"CS101", "MATH2001", "EE300"}
	for _, c := range valid {
		if !CompiledPatterns.CourseCode.MatchString(c) {
			t.Errorf("%q rejected, want accepted", c)
		}
	}

	invalid := []string{"", "cs101", "C101", "CS1", "101CS"}
	for _, c := range invalid {
		if CompiledPatterns.CourseCode.MatchString(c) {
			t.Errorf("%q accepted, want rejected", c)
		}
	}
}
