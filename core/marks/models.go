package marks

import "fmt"

// Mark components recognized by the grading policy.
const (
	ComponentAssignment = "assignment"
	ComponentMidterm    = "midterm"
	ComponentEndterm    = "endterm"
)

// Record is one mark entry as returned by the upstream API.
// ObtainedMarks within [0, MaxMarks] is an upstream guarantee; the
// aggregator neither clamps nor validates.
type Record struct {
	ID            int     `json:"id"`
	StudentID     int     `json:"student"`
	CourseID      int     `json:"course"`
	CourseCode    string  `json:"course_code,omitempty"`
	CourseName    string  `json:"course_name,omitempty"`
	Semester      int     `json:"semester,omitempty"`
	Component     string  `json:"component"`
	ObtainedMarks float64 `json:"obtained_marks"`
	MaxMarks      float64 `json:"max_marks"`
}

// CourseKey buckets records by course code when known, else by a
// synthetic key derived from the course ID.
func (r Record) CourseKey() string {
	if r.CourseCode != "" {
		return r.CourseCode
	}
	return fmt.Sprintf("COURSE-%d", r.CourseID)
}

// SubjectSummary is the per-subject rollup; derived, never persisted.
type SubjectSummary struct {
	Key        string  `json:"key"`
	CourseID   int     `json:"course_id,omitempty"`
	Semester   int     `json:"semester,omitempty"`
	TotalMarks float64 `json:"total_marks"` // out of 100
	Percentage int     `json:"percentage"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"grade_point"`
	Passed     bool    `json:"passed"`
}

// SemesterSummary aggregates a semester's subjects. SGPA is the plain
// arithmetic mean of subject grade points; credits do not weigh in.
type SemesterSummary struct {
	Semester int              `json:"semester"`
	Subjects []SubjectSummary `json:"subjects"`
	SGPA     float64          `json:"sgpa"`
}
