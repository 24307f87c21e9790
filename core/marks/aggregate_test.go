package marks

import (
	"math"
	"testing"
)

func subjectRecords(courseCode string, assignment, midterm, endterm float64) []Record {
	return []Record{
		{ID: 1, StudentID: 7, CourseID: 1, CourseCode: courseCode, Semester: 1, Component: ComponentAssignment, ObtainedMarks: assignment, MaxMarks: 30},
		{ID: 2, StudentID: 7, CourseID: 1, CourseCode: courseCode, Semester: 1, Component: ComponentMidterm, ObtainedMarks: midterm, MaxMarks: 30},
		{ID: 3, StudentID: 7, CourseID: 1, CourseCode: courseCode, Semester: 1, Component: ComponentEndterm, ObtainedMarks: endterm, MaxMarks: 50},
	}
}

func TestSummarizeSubject(t *testing.T) {
	g := DefaultGrading()

	tests := []struct {
		name      string
		recs      []Record
		wantTotal float64
		wantGrade string
		wantPoint float64
		wantPass  bool
	}{
		{
			name:      "full marks",
			recs:      subjectRecords("CS101", 30, 30, 50),
			wantTotal: 100, wantGrade: "A+", wantPoint: 10, wantPass: true,
		},
		{
			// 20*0.5 + 30*(15/30) ... shares: 0.5, 0.5, 0.5 -> 50
			name:      "half marks everywhere",
			recs:      subjectRecords("CS101", 15, 15, 25),
			wantTotal: 50, wantGrade: "C", wantPoint: 6, wantPass: true,
		},
		{
			name:      "failing total",
			recs:      subjectRecords("CS101", 6, 6, 10),
			wantTotal: 20, wantGrade: "F", wantPoint: 0, wantPass: false,
		},
		{
			name:      "empty subject degrades to zero",
			recs:      nil,
			wantTotal: 0, wantGrade: "F", wantPoint: 0, wantPass: false,
		},
		{
			name: "missing component contributes nothing",
			recs: []Record{
				{ID: 1, CourseCode: "CS101", Component: ComponentEndterm, ObtainedMarks: 50, MaxMarks: 50},
			},
			wantTotal: 50, wantGrade: "C", wantPoint: 6, wantPass: true,
		},
		{
			name: "zero max marks does not poison the total",
			recs: []Record{
				{ID: 1, CourseCode: "CS101", Component: ComponentAssignment, ObtainedMarks: 5, MaxMarks: 0},
				{ID: 2, CourseCode: "CS101", Component: ComponentEndterm, ObtainedMarks: 25, MaxMarks: 50},
			},
			wantTotal: 25, wantGrade: "F", wantPoint: 0, wantPass: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeSubject(tt.recs, g)
			if math.Abs(got.TotalMarks-tt.wantTotal) > 1e-9 {
				t.Errorf("TotalMarks = %v; want %v", got.TotalMarks, tt.wantTotal)
			}
			if got.Grade != tt.wantGrade {
				t.Errorf("Grade = %q; want %q", got.Grade, tt.wantGrade)
			}
			if got.GradePoint != tt.wantPoint {
				t.Errorf("GradePoint = %v; want %v", got.GradePoint, tt.wantPoint)
			}
			if got.Passed != tt.wantPass {
				t.Errorf("Passed = %v; want %v", got.Passed, tt.wantPass)
			}
		})
	}
}

func TestLetterGradeTotalAndClosedOnLowerBound(t *testing.T) {
	g := DefaultGrading()

	// exact boundaries map to the higher grade
	boundaries := map[float64]string{
		90: "A+", 80: "A", 70: "B+", 60: "B", 50: "C", 40: "D", 39: "F", 0: "F", 100: "A+",
	}
	for pct, want := range boundaries {
		if got := g.Letter(pct); got != want {
			t.Errorf("Letter(%v) = %q; want %q", pct, got, want)
		}
	}

	// total and deterministic over the whole range
	for pct := 0; pct <= 100; pct++ {
		grade := g.Letter(float64(pct))
		if grade == "" {
			t.Fatalf("Letter(%d) produced no grade", pct)
		}
		if _, ok := g.GradePoints[grade]; !ok {
			t.Fatalf("Letter(%d) = %q has no grade point", pct, grade)
		}
	}
}

func TestLetterGradeUnorderedBreakpoints(t *testing.T) {
	g := DefaultGrading()
	// breakpoints shuffled in config must not change the outcome
	g.Breakpoints = []GradeBreakpoint{
		{Min: 50, Grade: "C"},
		{Min: 90, Grade: "A+"},
		{Min: 40, Grade: "D"},
		{Min: 70, Grade: "B+"},
		{Min: 80, Grade: "A"},
		{Min: 60, Grade: "B"},
	}
	if got := g.Letter(85); got != "A" {
		t.Errorf("Letter(85) = %q; want A", got)
	}
}

func TestCustomWeights(t *testing.T) {
	g := DefaultGrading()
	g.Weights = map[string]float64{
		ComponentMidterm: 0.5,
		ComponentEndterm: 0.5,
	}
	recs := []Record{
		{ID: 1, CourseCode: "CS101", Component: ComponentMidterm, ObtainedMarks: 30, MaxMarks: 30},
		{ID: 2, CourseCode: "CS101", Component: ComponentEndterm, ObtainedMarks: 25, MaxMarks: 50},
		// assignment carries no weight under this policy
		{ID: 3, CourseCode: "CS101", Component: ComponentAssignment, ObtainedMarks: 0, MaxMarks: 30},
	}
	got := SummarizeSubject(recs, g)
	if got.TotalMarks != 75 {
		t.Errorf("TotalMarks = %v; want 75", got.TotalMarks)
	}
}

func TestSummarizeSemesters(t *testing.T) {
	g := DefaultGrading()
	recs := append(subjectRecords("CS101", 30, 30, 50), // 100 -> A+ -> 10
		Record{ID: 4, StudentID: 7, CourseID: 2, CourseCode: "MA102", Semester: 1, Component: ComponentEndterm, ObtainedMarks: 25, MaxMarks: 50}, // 50 -> C -> 6
		Record{ID: 5, StudentID: 7, CourseID: 3, CourseCode: "PH201", Semester: 2, Component: ComponentEndterm, ObtainedMarks: 45, MaxMarks: 50}, // 45 -> D -> 5
	)

	got := SummarizeSemesters(recs, g)
	if len(got) != 2 {
		t.Fatalf("SummarizeSemesters() returned %d semesters; want 2", len(got))
	}
	if got[0].Semester != 1 || got[1].Semester != 2 {
		t.Fatalf("semesters out of order: %+v", got)
	}
	if got[0].SGPA != 8.0 { // mean(10, 6)
		t.Errorf("semester 1 SGPA = %v; want 8.0", got[0].SGPA)
	}
	if len(got[0].Subjects) != 2 || got[0].Subjects[0].Key != "CS101" || got[0].Subjects[1].Key != "MA102" {
		t.Errorf("semester 1 subjects = %+v", got[0].Subjects)
	}
	if got[1].SGPA != 5.0 {
		t.Errorf("semester 2 SGPA = %v; want 5.0", got[1].SGPA)
	}
}

func TestGPARounding(t *testing.T) {
	subjects := []SubjectSummary{
		{GradePoint: 10}, {GradePoint: 9}, {GradePoint: 8},
	} // mean 9.0
	if got := GPA(subjects); got != 9.0 {
		t.Errorf("GPA = %v; want 9.0", got)
	}
	subjects = []SubjectSummary{{GradePoint: 10}, {GradePoint: 9}, {GradePoint: 9}}
	if got := GPA(subjects); got != 9.3 { // 9.333 -> 9.3
		t.Errorf("GPA = %v; want 9.3", got)
	}
	if got := GPA(nil); got != 0 {
		t.Errorf("GPA(nil) = %v; want 0", got)
	}
}
