package attendance

import (
	"math"
	"sort"
)

// Filter returns the records whose date falls within w, preserving order.
func Filter(recs []Record, w Window) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize rolls the records within w up into status counts and a
// present-percentage. Statuses other than P/A/L land in the unknown
// bucket so that TotalCount always equals the sum of the four counts.
// An empty record set yields a zero summary, never an error.
func Summarize(recs []Record, w Window) Summary {
	var s Summary
	for _, r := range recs {
		if !w.Contains(r.Date) {
			continue
		}
		s.TotalCount++
		switch r.Status {
		case StatusPresent:
			s.PresentCount++
		case StatusAbsent:
			s.AbsentCount++
		case StatusLate:
			s.LateCount++
		default:
			s.UnknownCount++
		}
	}
	s.Percentage = percentage(s.PresentCount, s.TotalCount)
	return s
}

// SummarizeByCourse groups records by course key and summarizes each
// group. Results are sorted by key for stable output.
func SummarizeByCourse(recs []Record, w Window) []Summary {
	return summarizeBy(recs, w, Record.CourseKey)
}

// SummarizeByStudent groups records by student key and summarizes each
// group, the per-roster view faculty screens render.
func SummarizeByStudent(recs []Record, w Window) []Summary {
	return summarizeBy(recs, w, Record.StudentKey)
}

func summarizeBy(recs []Record, w Window, key func(Record) string) []Summary {
	groups := make(map[string][]Record)
	for _, r := range recs {
		if !w.Contains(r.Date) {
			continue
		}
		k := key(r)
		groups[k] = append(groups[k], r)
	}

	out := make([]Summary, 0, len(groups))
	for k, grp := range groups {
		s := Summarize(grp, Window{})
		s.Key = k
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// percentage rounds half-up to the nearest integer; 0 when total is 0.
func percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(present)/float64(total)*100 + 0.5))
}
