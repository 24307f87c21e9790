package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/gateway"
)

type facultyApi struct {
	dash *dashboard.Service
	gw   *gateway.Client
}

func registerFacultyAPI(g *echo.Group, dash *dashboard.Service, gw *gateway.Client) {
	api := facultyApi{dash: dash, gw: gw}

	g.GET("/courses", api.courses)
	g.GET("/courses/:id/students", api.courseStudents)
	g.GET("/day", api.day)
	g.POST("/attendance", api.markAttendance)
	g.PUT("/attendance/:id", api.updateAttendance)
	g.POST("/marks", api.enterMarks)
}

// Handlers

func (api *facultyApi) courses(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	courses, err := api.gw.GetFacultyCourses(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "fetching faculty courses")
	}
	if courses == nil {
		courses = []gateway.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *facultyApi) courseStudents(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	students, err := api.gw.GetCourseStudents(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching course roster")
	}
	if students == nil {
		students = []gateway.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

// day serves the attendance marking screen: roster plus whatever was
// already marked for the selected course and date.
func (api *facultyApi) day(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	courseID, err := strconv.Atoi(ctx.QueryParam("course"))
	if err != nil || courseID <= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "course", Error: "a valid course is required"})
	}
	date := ctx.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	res, err := api.dash.FacultyDay(ctx.Request().Context(), sess, courseID, date)
	if err != nil {
		return errors.Wrap(err, "loading marking screen")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *facultyApi) markAttendance(ctx echo.Context) error {
	var data gateway.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.gw.MarkAttendance(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *facultyApi) updateAttendance(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data gateway.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.gw.UpdateAttendance(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *facultyApi) enterMarks(ctx echo.Context) error {
	var data EnterMarksRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnterMarksRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.gw.CreateMarks(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "entering marks")
	}
	return ctx.NoContent(http.StatusCreated)
}

// EnterMarksRequest mirrors the upstream marks payload.
type EnterMarksRequest struct {
	StudentID     int     `json:"student" validate:"required"`
	CourseID      int     `json:"course" validate:"required"`
	Semester      int     `json:"semester" validate:"required"`
	Component     string  `json:"component" validate:"required,oneof=assignment midterm endterm"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"min=0"`
	MaxMarks      float64 `json:"max_marks" validate:"required,gt=0"`
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
