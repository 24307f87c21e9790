package marks

import "sort"

type (
	// GradingConfig parameterizes the marks aggregation. It is
	// configuration, not code: weights and breakpoints come from the
	// app config so grading policy changes need no logic changes.
	GradingConfig struct {
		// Weights maps a mark component to its share of the
		// 100-point total.
		Weights map[string]float64
		// Breakpoints map a minimum percentage to a letter grade;
		// evaluated top-down on the first match, boundaries closed
		// on the lower bound.
		Breakpoints []GradeBreakpoint
		// GradePoints maps a letter grade to its grade-point value.
		GradePoints map[string]float64
		// FallbackGrade applies when no breakpoint matches.
		FallbackGrade string
	}

	GradeBreakpoint struct {
		Min   float64
		Grade string
	}
)

// DefaultGrading returns the reference policy: 20% assignments,
// 30% midterm, 50% endterm, and the standard 10-point grade ladder.
func DefaultGrading() GradingConfig {
	return GradingConfig{
		Weights: map[string]float64{
			ComponentAssignment: 0.2,
			ComponentMidterm:    0.3,
			ComponentEndterm:    0.5,
		},
		Breakpoints: []GradeBreakpoint{
			{Min: 90, Grade: "A+"},
			{Min: 80, Grade: "A"},
			{Min: 70, Grade: "B+"},
			{Min: 60, Grade: "B"},
			{Min: 50, Grade: "C"},
			{Min: 40, Grade: "D"},
		},
		GradePoints: map[string]float64{
			"A+": 10, "A": 9, "B+": 8, "B": 7, "C": 6, "D": 5, "F": 0,
		},
		FallbackGrade: "F",
	}
}

// Letter maps a percentage to a letter grade by walking the breakpoints
// from the highest minimum down and taking the first match. Falls back
// to FallbackGrade when nothing matches.
func (g GradingConfig) Letter(pct float64) string {
	bps := make([]GradeBreakpoint, len(g.Breakpoints))
	copy(bps, g.Breakpoints)
	sort.SliceStable(bps, func(i, j int) bool { return bps[i].Min > bps[j].Min })

	for _, bp := range bps {
		if pct >= bp.Min {
			return bp.Grade
		}
	}
	return g.FallbackGrade
}

// Point looks the letter grade up in the configured table; unknown
// grades score 0.
func (g GradingConfig) Point(grade string) float64 {
	return g.GradePoints[grade]
}

// Passed reports whether a grade clears the fallback (failing) grade.
func (g GradingConfig) Passed(grade string) bool {
	return grade != g.FallbackGrade
}
