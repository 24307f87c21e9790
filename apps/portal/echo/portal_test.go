package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/core/session"
)

func TestRoleGate(t *testing.T) {
	srv, sessions, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	studentCookie := sessionCookie(t, sessions, 7, session.RoleStudent)

	// an API client gets a JSON 403
	req, rec := newRequest(http.MethodGet, "/admin/overview")
	req.AddCookie(studentCookie)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error": "permission denied"}`, rec.Body.String())

	// a browser is sent back to the login page
	req, rec = newRequest(http.MethodGet, "/admin/overview")
	req.AddCookie(studentCookie)
	req.Header.Set(echo.HeaderAccept, echo.MIMETextHTML)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestSessionRequired(t *testing.T) {
	srv, _, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	req, rec := newRequest(http.MethodGet, "/student/attendance")
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req, rec = newRequest(http.MethodGet, "/student/attendance")
	req.Header.Set(echo.HeaderAccept, echo.MIMETextHTML)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestStudentAttendanceScreen(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/attendance/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("student"))
		assert.Equal(t, "2024-10", r.URL.Query().Get("month"))
		jsonHandler(http.StatusOK, `[
			{"id": 1, "student": 7, "course": 3, "course_code": "CS101", "date": "2024-10-01", "status": "P"},
			{"id": 2, "student": 7, "course": 3, "course_code": "CS101", "date": "2024-10-02", "status": "A"},
			{"id": 3, "student": 7, "course": 3, "course_code": "CS101", "date": "2024-10-03", "status": "L"}
		]`)(w, r)
	})
	mux.HandleFunc("/api/enrollments/student/7/enrollments/", jsonHandler(http.StatusOK, `[
		{"id": 11, "student": 7, "course": {"id": 3, "course_code": "CS101"}}
	]`))
	srv, sessions, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodGet, "/student/attendance?month=2024-10")
	req.AddCookie(sessionCookie(t, sessions, 7, session.RoleStudent))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var res dashboard.StudentAttendance
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	assert.Equal(t, "2024-10", res.Month)
	assert.Equal(t, 33, res.Overall.Percentage)
	assert.Equal(t, 3, res.Overall.TotalCount)
	assert.Equal(t, 1, res.CourseCount)
	if assert.Len(t, res.Courses, 1) {
		assert.Equal(t, "CS101", res.Courses[0].Key)
	}
}

func TestFacultyDayRequiresCourse(t *testing.T) {
	srv, sessions, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	req, rec := newRequest(http.MethodGet, "/faculty/day?date=2024-10-01")
	req.AddCookie(sessionCookie(t, sessions, 42, session.RoleFaculty))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"course": "a valid course is required"}`, rec.Body.String())
}

func TestFacultyMarkAttendanceValidation(t *testing.T) {
	srv, sessions, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	req, rec := newRequest(http.MethodPost, "/faculty/attendance",
		[]byte(`{"student": 7, "course": 3, "date": "2024-10-01", "status": "X"}`))
	req.AddCookie(sessionCookie(t, sessions, 42, session.RoleFaculty))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status")
}

func TestFacultyMarkAttendanceForwarded(t *testing.T) {
	var marked bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/attendance/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var data map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&data)
		assert.Equal(t, "P", data["status"])
		marked = true
		w.WriteHeader(http.StatusCreated)
	})
	srv, sessions, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodPost, "/faculty/attendance",
		[]byte(`{"student": 7, "course": 3, "date": "2024-10-01", "status": "P"}`))
	req.AddCookie(sessionCookie(t, sessions, 42, session.RoleFaculty))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, marked)
}

func TestUpstreamServerErrorRelayedAsBadGateway(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students/", jsonHandler(http.StatusInternalServerError, `{"detail": "boom"}`))
	srv, sessions, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodGet, "/admin/students")
	req.AddCookie(sessionCookie(t, sessions, 1, session.RoleAdmin))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error": "upstream service unavailable"}`, rec.Body.String())
}

func TestUpstreamClientErrorRelayedAsIs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students/9/", jsonHandler(http.StatusNotFound, `{"detail": "Not found"}`))
	srv, sessions, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodGet, "/admin/students/9")
	req.AddCookie(sessionCookie(t, sessions, 1, session.RoleAdmin))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "not found"}`, rec.Body.String())
}
