package marks

import (
	"math"
	"sort"
)

// SummarizeSubject rolls one subject's records up into a weighted total
// on the 100-point scale. Per component the obtained/max shares are
// summed and weighted per the grading config; a component with a
// non-positive max contributes nothing rather than poisoning the total.
func SummarizeSubject(recs []Record, g GradingConfig) SubjectSummary {
	type tally struct{ obtained, max float64 }
	tallies := make(map[string]*tally, len(g.Weights))

	var s SubjectSummary
	for _, r := range recs {
		if s.Key == "" {
			s.Key = r.CourseKey()
			s.CourseID = r.CourseID
			s.Semester = r.Semester
		}
		tl, ok := tallies[r.Component]
		if !ok {
			tl = new(tally)
			tallies[r.Component] = tl
		}
		tl.obtained += r.ObtainedMarks
		tl.max += r.MaxMarks
	}

	var total float64
	for component, weight := range g.Weights {
		tl, ok := tallies[component]
		if !ok || tl.max <= 0 {
			continue
		}
		share := tl.obtained / tl.max
		if math.IsNaN(share) || math.IsInf(share, 0) {
			continue
		}
		total += share * weight * 100
	}

	s.TotalMarks = total
	s.Percentage = roundPct(total)
	s.Grade = g.Letter(float64(s.Percentage))
	s.GradePoint = g.Point(s.Grade)
	s.Passed = g.Passed(s.Grade)
	return s
}

// SummarizeByCourse groups records by course key and summarizes each
// subject, sorted by key.
func SummarizeByCourse(recs []Record, g GradingConfig) []SubjectSummary {
	groups := make(map[string][]Record)
	for _, r := range recs {
		k := r.CourseKey()
		groups[k] = append(groups[k], r)
	}

	out := make([]SubjectSummary, 0, len(groups))
	for _, grp := range groups {
		out = append(out, SummarizeSubject(grp, g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SummarizeSemesters buckets subjects by semester and computes each
// semester's SGPA. Subjects without a semester land in semester 0.
func SummarizeSemesters(recs []Record, g GradingConfig) []SemesterSummary {
	bySem := make(map[int][]Record)
	for _, r := range recs {
		bySem[r.Semester] = append(bySem[r.Semester], r)
	}

	out := make([]SemesterSummary, 0, len(bySem))
	for sem, grp := range bySem {
		subjects := SummarizeByCourse(grp, g)
		out = append(out, SemesterSummary{
			Semester: sem,
			Subjects: subjects,
			SGPA:     GPA(subjects),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Semester < out[j].Semester })
	return out
}

// GPA is the arithmetic mean of subject grade points rounded to one
// decimal. Credit-weighting is deliberately absent to stay
// output-compatible with the upstream report cards.
func GPA(subjects []SubjectSummary) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subjects {
		sum += s.GradePoint
	}
	return math.Floor(sum/float64(len(subjects))*10+0.5) / 10
}

// roundPct rounds half-up to the nearest integer.
func roundPct(pct float64) int {
	if math.IsNaN(pct) {
		return 0
	}
	return int(math.Floor(pct + 0.5))
}
