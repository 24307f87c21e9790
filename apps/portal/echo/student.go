package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/gateway"
)

type studentApi struct {
	dash *dashboard.Service
	gw   *gateway.Client
}

func registerStudentAPI(g *echo.Group, dash *dashboard.Service, gw *gateway.Client) {
	api := studentApi{dash: dash, gw: gw}

	g.GET("/attendance", api.attendance)
	g.GET("/marks", api.marks)
	g.GET("/courses", api.courses)
}

// Handlers

func (api *studentApi) attendance(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	month := ctx.QueryParam("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	res, err := api.dash.StudentAttendance(ctx.Request().Context(), sess, month)
	if err != nil {
		return errors.Wrap(err, "loading attendance dashboard")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *studentApi) marks(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	res, err := api.dash.StudentMarks(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading marks dashboard")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *studentApi) courses(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	enrs, err := api.gw.GetStudentEnrollments(ctx.Request().Context(), sess.UserID)
	if err != nil {
		return errors.Wrap(err, "fetching enrollments")
	}
	if enrs == nil {
		enrs = []gateway.Enrollment{}
	}
	return ctx.JSON(http.StatusOK, enrs)
}
