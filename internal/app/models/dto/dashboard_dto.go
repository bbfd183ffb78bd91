package dto

// AdminDashboard aggregates system-wide totals
type AdminDashboard struct {
	TotalStudents    int64 `json:"totalStudents"`
	TotalLecturers   int64 `json:"totalLecturers"`
	TotalCourses     int64 `json:"totalCourses"`
	ActiveCourses    int64 `json:"activeCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}

// StudentDashboard summarizes a student's academic standing
type StudentDashboard struct {
	EnrolledCourses  int      `json:"enrolledCourses"`
	CompletedCourses int      `json:"completedCourses"`
	TotalCredits     int      `json:"totalCredits"`
	AverageGrade     *float64 `json:"averageGrade,omitempty"`
}
