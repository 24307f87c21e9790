package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/gateway"
)

type adminApi struct {
	dash *dashboard.Service
	gw   *gateway.Client
}

func registerAdminAPI(g *echo.Group, dash *dashboard.Service, gw *gateway.Client) {
	api := adminApi{dash: dash, gw: gw}

	g.GET("/overview", api.overview)

	g.GET("/students", api.queryStudents)
	g.POST("/students", api.createStudent)
	g.GET("/students/:id", api.retrieveStudent)
	g.PUT("/students/:id", api.updateStudent)
	g.DELETE("/students/:id", api.destroyStudent)

	g.GET("/courses", api.queryCourses)
	g.POST("/courses", api.createCourse)
	g.GET("/courses/:id", api.retrieveCourse)
	g.PUT("/courses/:id", api.updateCourse)
	g.DELETE("/courses/:id", api.destroyCourse)

	g.GET("/faculty", api.queryFaculty)
	g.POST("/faculty", api.createFaculty)
	g.PUT("/faculty/:id", api.updateFaculty)
	g.DELETE("/faculty/:id", api.destroyFaculty)
}

// Handlers

func (api *adminApi) overview(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	res, err := api.dash.AdminOverview(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading admin overview")
	}
	return ctx.JSON(http.StatusOK, res)
}

// queryParams flattens the request query string into the params the
// gateway forwards upstream.
func queryParams(ctx echo.Context) map[string]string {
	q := ctx.QueryParams()
	if len(q) == 0 {
		return nil
	}
	params := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 && v[0] != "" {
			params[k] = v[0]
		}
	}
	return params
}

// bindPassthrough reads an upstream-bound payload without imposing a
// schema; the upstream validates and its field errors are relayed.
func bindPassthrough(ctx echo.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := ctx.Bind(&data); err != nil {
		return nil, errors.Wrap(err, "binding payload")
	}
	return data, nil
}

func (api *adminApi) queryStudents(ctx echo.Context) error {
	students, err := api.gw.GetStudents(ctx.Request().Context(), queryParams(ctx))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []gateway.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *adminApi) createStudent(ctx echo.Context) error {
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.CreateStudent(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) retrieveStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	student, err := api.gw.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, fmt.Sprintf("fetching student %d", id))
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *adminApi) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.UpdateStudent(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *adminApi) destroyStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.DeleteStudent(ctx.Request().Context(), id); err != nil {
		if gateway.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryCourses(ctx echo.Context) error {
	courses, err := api.gw.GetCourses(ctx.Request().Context(), queryParams(ctx))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []gateway.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *adminApi) createCourse(ctx echo.Context) error {
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.CreateCourse(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) retrieveCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	course, err := api.gw.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, fmt.Sprintf("fetching course %d", id))
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *adminApi) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.UpdateCourse(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *adminApi) destroyCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.DeleteCourse(ctx.Request().Context(), id); err != nil {
		if gateway.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryFaculty(ctx echo.Context) error {
	faculty, err := api.gw.GetFaculty(ctx.Request().Context(), queryParams(ctx))
	if err != nil {
		return errors.Wrap(err, "querying faculty")
	}
	if faculty == nil {
		faculty = []gateway.Faculty{}
	}
	return ctx.JSON(http.StatusOK, faculty)
}

func (api *adminApi) createFaculty(ctx echo.Context) error {
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.CreateFaculty(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating faculty")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) updateFaculty(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data, err := bindPassthrough(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.UpdateFaculty(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating faculty")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *adminApi) destroyFaculty(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.gw.DeleteFaculty(ctx.Request().Context(), id); err != nil {
		if gateway.IsNotFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting faculty")
	}
	return ctx.NoContent(http.StatusNoContent)
}
