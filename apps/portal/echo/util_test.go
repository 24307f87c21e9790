package echoapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/core/marks"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
	"github.com/unitrack/portal/storage/sessionstore"
	testutil "github.com/unitrack/portal/tests"
)

// newTestServer wires a full portal server against a stub upstream.
func newTestServer(t *testing.T, upstream http.Handler) (Server, session.ServiceInterface, func()) {
	t.Helper()

	core.Conf.Debug = false
	core.Conf.TestMode = true

	up := httptest.NewServer(upstream)

	logger := testutil.NewLogger(t)
	gw, err := gateway.NewClient(&gateway.Options{
		BaseURL: up.URL + "/api",
		Timeout: 5 * time.Second,
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("newTestServer() failed: %v", err)
	}

	sessions := session.NewService(sessionstore.NewInMem(), time.Hour)
	dash := dashboard.NewService(gw, marks.DefaultGrading(), logger)

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Gateway:        gw,
		Sessions:       sessions,
		Dashboards:     dash,
		Logger:         logger,
	})
	return srv, sessions, up.Close
}

// sessionCookie begins a session directly in the store and returns its
// signed cookie, skipping the login round-trip.
func sessionCookie(t *testing.T, sessions session.ServiceInterface, userID int, role string) *http.Cookie {
	t.Helper()
	sess, err := sessions.Begin(context.Background(), userID, "Test User", "test@unitrack.test", role)
	if err != nil {
		t.Fatalf("sessionCookie() failed: %v", err)
	}
	token, err := GenerateToken(sess)
	if err != nil {
		t.Fatalf("sessionCookie() failed: %v", err)
	}
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return req, rec
}

func jsonHandler(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}
