// Package dashboard composes upstream fetches into the per-role screen
// payloads. Sub-requests of one screen load run in parallel and are
// awaited jointly, so aggregation never observes a partially-populated
// record set; stale cycles are cancelled and their results discarded.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/attendance"
	"github.com/unitrack/portal/core/marks"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
)

// Upstream is the slice of the gateway client the dashboards read from.
type Upstream interface {
	GetAttendance(ctx context.Context, q gateway.AttendanceQuery) ([]attendance.Record, error)
	GetMarks(ctx context.Context, q gateway.MarksQuery) ([]marks.Record, error)
	GetCourses(ctx context.Context, params map[string]string) ([]gateway.Course, error)
	GetStudents(ctx context.Context, params map[string]string) ([]gateway.Student, error)
	GetFaculty(ctx context.Context, params map[string]string) ([]gateway.Faculty, error)
	GetFacultyCourses(ctx context.Context, facultyID int) ([]gateway.Course, error)
	GetCourseStudents(ctx context.Context, courseID int) ([]gateway.Student, error)
	GetStudentEnrollments(ctx context.Context, studentID int) ([]gateway.Enrollment, error)
	GetAnalytics(ctx context.Context) (json.RawMessage, error)
}

var _ Upstream = (*gateway.Client)(nil)

type Service struct {
	up      Upstream
	grading marks.GradingConfig
	cycles  *Cycles
	log     core.Logger
}

func NewService(up Upstream, grading marks.GradingConfig, log core.Logger) *Service {
	return &Service{
		up:      up,
		grading: grading,
		cycles:  NewCycles(),
		log:     log,
	}
}

type (
	StudentAttendance struct {
		Month       string               `json:"month"`
		Courses     []attendance.Summary `json:"courses"`
		Overall     attendance.Summary   `json:"overall"`
		CourseCount int                  `json:"course_count"`
	}

	StudentMarks struct {
		Semesters []marks.SemesterSummary `json:"semesters"`
		CGPA      float64                 `json:"cgpa"`
	}

	FacultyDay struct {
		CourseID int                  `json:"course_id"`
		Date     string               `json:"date"`
		Roster   []gateway.Student    `json:"roster"`
		Records  []attendance.Record  `json:"records"`
		Summary  attendance.Summary   `json:"summary"`
		Students []attendance.Summary `json:"students"`
	}

	AdminOverview struct {
		StudentCount int             `json:"student_count"`
		CourseCount  int             `json:"course_count"`
		FacultyCount int             `json:"faculty_count"`
		Analytics    json.RawMessage `json:"analytics,omitempty"`
	}
)

// StudentAttendance loads a student's attendance for a month together
// with their enrollments and rolls it up per course.
func (svc *Service) StudentAttendance(ctx context.Context, sess session.Session, month string) (StudentAttendance, error) {
	key := cycleKey(sess, "student-attendance")
	cctx, seq := svc.cycles.Begin(ctx, key)

	var (
		recs []attendance.Record
		enrs []gateway.Enrollment
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() (err error) {
		recs, err = svc.up.GetAttendance(gctx, gateway.AttendanceQuery{StudentID: sess.UserID, Month: month})
		return errors.Wrap(err, "fetching attendance")
	})
	g.Go(func() (err error) {
		enrs, err = svc.up.GetStudentEnrollments(gctx, sess.UserID)
		return errors.Wrap(err, "fetching enrollments")
	})
	if err := g.Wait(); err != nil {
		return StudentAttendance{}, svc.cycleErr(key, seq, err)
	}
	if !svc.cycles.Finish(key, seq) {
		return StudentAttendance{}, ErrSuperseded
	}

	w := attendance.MonthWindow(month)
	return StudentAttendance{
		Month:       month,
		Courses:     attendance.SummarizeByCourse(recs, w),
		Overall:     attendance.Summarize(recs, w),
		CourseCount: len(enrs),
	}, nil
}

// StudentMarks loads a student's marks and courses jointly and produces
// per-semester report cards. Records missing a semester inherit it from
// the course catalog when possible.
func (svc *Service) StudentMarks(ctx context.Context, sess session.Session) (StudentMarks, error) {
	key := cycleKey(sess, "student-marks")
	cctx, seq := svc.cycles.Begin(ctx, key)

	var (
		recs    []marks.Record
		courses []gateway.Course
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() (err error) {
		recs, err = svc.up.GetMarks(gctx, gateway.MarksQuery{StudentID: sess.UserID})
		return errors.Wrap(err, "fetching marks")
	})
	g.Go(func() (err error) {
		courses, err = svc.up.GetCourses(gctx, nil)
		return errors.Wrap(err, "fetching courses")
	})
	if err := g.Wait(); err != nil {
		return StudentMarks{}, svc.cycleErr(key, seq, err)
	}
	if !svc.cycles.Finish(key, seq) {
		return StudentMarks{}, ErrSuperseded
	}

	semByCourse := make(map[int]int, len(courses))
	for _, c := range courses {
		semByCourse[c.ID] = c.Semester
	}
	for i, r := range recs {
		if r.Semester == 0 {
			recs[i].Semester = semByCourse[r.CourseID]
		}
	}

	semesters := marks.SummarizeSemesters(recs, svc.grading)
	var all []marks.SubjectSummary
	for _, sem := range semesters {
		all = append(all, sem.Subjects...)
	}
	return StudentMarks{Semesters: semesters, CGPA: marks.GPA(all)}, nil
}

// FacultyDay loads a course roster and that day's attendance jointly,
// the marking screen's working set.
func (svc *Service) FacultyDay(ctx context.Context, sess session.Session, courseID int, date string) (FacultyDay, error) {
	key := cycleKey(sess, "faculty-day")
	cctx, seq := svc.cycles.Begin(ctx, key)

	var (
		roster []gateway.Student
		recs   []attendance.Record
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() (err error) {
		roster, err = svc.up.GetCourseStudents(gctx, courseID)
		return errors.Wrap(err, "fetching roster")
	})
	g.Go(func() (err error) {
		recs, err = svc.up.GetAttendance(gctx, gateway.AttendanceQuery{Date: date})
		return errors.Wrap(err, "fetching attendance")
	})
	if err := g.Wait(); err != nil {
		return FacultyDay{}, svc.cycleErr(key, seq, err)
	}
	if !svc.cycles.Finish(key, seq) {
		return FacultyDay{}, ErrSuperseded
	}

	courseRecs := make([]attendance.Record, 0, len(recs))
	for _, r := range recs {
		if r.CourseID == courseID {
			courseRecs = append(courseRecs, r)
		}
	}
	w := attendance.DayWindow(date)
	return FacultyDay{
		CourseID: courseID,
		Date:     date,
		Roster:   roster,
		Records:  courseRecs,
		Summary:  attendance.Summarize(courseRecs, w),
		Students: attendance.SummarizeByStudent(courseRecs, w),
	}, nil
}

// AdminOverview loads the admin landing counts. Analytics is
// best-effort: its failure degrades to an absent payload rather than
// failing the screen.
func (svc *Service) AdminOverview(ctx context.Context, sess session.Session) (AdminOverview, error) {
	key := cycleKey(sess, "admin-overview")
	cctx, seq := svc.cycles.Begin(ctx, key)

	var (
		students  []gateway.Student
		courses   []gateway.Course
		faculty   []gateway.Faculty
		analytics json.RawMessage
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() (err error) {
		students, err = svc.up.GetStudents(gctx, nil)
		return errors.Wrap(err, "fetching students")
	})
	g.Go(func() (err error) {
		courses, err = svc.up.GetCourses(gctx, nil)
		return errors.Wrap(err, "fetching courses")
	})
	g.Go(func() (err error) {
		faculty, err = svc.up.GetFaculty(gctx, nil)
		return errors.Wrap(err, "fetching faculty")
	})
	g.Go(func() error {
		raw, err := svc.up.GetAnalytics(gctx)
		if err != nil {
			svc.log.Warn("analytics unavailable", err)
			return nil
		}
		analytics = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		return AdminOverview{}, svc.cycleErr(key, seq, err)
	}
	if !svc.cycles.Finish(key, seq) {
		return AdminOverview{}, ErrSuperseded
	}

	return AdminOverview{
		StudentCount: len(students),
		CourseCount:  len(courses),
		FacultyCount: len(faculty),
		Analytics:    analytics,
	}, nil
}

// cycleErr maps a failure of a superseded cycle to ErrSuperseded; the
// cancellation was deliberate and the caller must simply drop it.
func (svc *Service) cycleErr(key string, seq uint64, err error) error {
	if svc.cycles.Superseded(key, seq) {
		return ErrSuperseded
	}
	return err
}

func cycleKey(sess session.Session, screen string) string {
	return fmt.Sprintf("%s/%s", sess.ID, screen)
}
