package attendance

import "fmt"

// Statuses as stored by the upstream API.
const (
	StatusPresent = "P"
	StatusAbsent  = "A"
	StatusLate    = "L"
)

// Record is one attendance entry as returned by the upstream API.
// Records are immutable once fetched; a mutation triggers a re-fetch.
// Uniqueness per (student, course, date) is enforced upstream.
type Record struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student"`
	StudentName string `json:"student_name,omitempty"`
	CourseID    int    `json:"course"`
	CourseCode  string `json:"course_code,omitempty"`
	CourseName  string `json:"course_name,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	Status      string `json:"status"`
}

// CourseKey buckets records by course code when known, else by a
// synthetic key derived from the course ID. Records with different keys
// are never merged, even when they denote the same course through a
// data-quality glitch.
func (r Record) CourseKey() string {
	if r.CourseCode != "" {
		return r.CourseCode
	}
	return fmt.Sprintf("COURSE-%d", r.CourseID)
}

// StudentKey buckets records by student for per-student rollups.
func (r Record) StudentKey() string {
	if r.StudentName != "" {
		return r.StudentName
	}
	return fmt.Sprintf("STUDENT-%d", r.StudentID)
}

// Window scopes aggregation to a calendar month ("YYYY-MM") or an exact
// date ("YYYY-MM-DD"). The zero Window matches every record.
type Window struct {
	Month string
	Date  string
}

func MonthWindow(month string) Window { return Window{Month: month} }
func DayWindow(date string) Window    { return Window{Date: date} }

func (w Window) Contains(date string) bool {
	if w.Date != "" {
		return date == w.Date
	}
	if w.Month != "" {
		return len(date) >= len(w.Month) && date[:len(w.Month)] == w.Month
	}
	return true
}

// Summary is a pure function of (records, window); it is recomputed on
// every fetch + filter change and never persisted.
type Summary struct {
	Key          string `json:"key,omitempty"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	LateCount    int    `json:"late_count"`
	UnknownCount int    `json:"unknown_count"`
	TotalCount   int    `json:"total_count"`
	Percentage   int    `json:"percentage"`
}
