package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Gateway        *gateway.Client
		Sessions       session.ServiceInterface
		Dashboards     *dashboard.Service
		Logger         core.Logger
		// Shutdown receives a SIGTERM when an unrecoverable error is caught.
		Shutdown chan<- os.Signal
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	// the portal's own anti-forgery token, separate from the upstream's
	if !core.Conf.TestMode {
		s.app.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup: "header:X-CSRF-Token",
			CookiePath:  "/",
		}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)

	registerAuthAPI(s.app, s.opts.Gateway, s.opts.Sessions, s.opts.Logger)

	studentMW := sessionMiddleware(s.opts.Sessions, session.RoleStudent)
	facultyMW := sessionMiddleware(s.opts.Sessions, session.RoleFaculty)
	adminMW := sessionMiddleware(s.opts.Sessions, session.RoleAdmin)

	registerStudentAPI(s.app.Group("/student", studentMW), s.opts.Dashboards, s.opts.Gateway)
	registerFacultyAPI(s.app.Group("/faculty", facultyMW), s.opts.Dashboards, s.opts.Gateway)
	registerAdminAPI(s.app.Group("/admin", adminMW), s.opts.Dashboards, s.opts.Gateway)
}

func (s *server) signalShutdown() {
	if s.opts.Shutdown != nil {
		s.opts.Shutdown <- syscall.SIGTERM
	}
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Unitrack Portal!")
}
