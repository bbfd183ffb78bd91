package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student number pattern - 8 digits
	StudentNumberPattern = `^\d{8}$`

	// Course code pattern - department letters followed by digits, e.g. CS101
	CourseCodePattern = `^[A-Z]{2,6}\d{3,4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// Grade bounds. Grades are numeric only.
const (
	GradeMin = 0.0
	GradeMax = 100.0
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	StudentNumber *regexp.Regexp
	CourseCode    *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
	CourseCode:    regexp.MustCompile(CourseCodePattern),
}

// ValidGrade reports whether a grade value is inside the accepted range.
func ValidGrade(grade float64) bool {
	return grade >= GradeMin && grade <= GradeMax
}
