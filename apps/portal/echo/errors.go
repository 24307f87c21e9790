package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	errSessionEnded  = echo.NewHTTPError(http.StatusUnauthorized, "session has expired")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "not found")
	errBadGateway    = echo.NewHTTPError(http.StatusBadGateway, "upstream service unavailable")
	errSuperseded    = echo.NewHTTPError(http.StatusConflict, "request superseded by a newer one")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if errors.Cause(err) == dashboard.ErrSuperseded {
			err = errSuperseded
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *gateway.APIError:
			if origErr.ClientError() {
				// the upstream already said what is wrong; relay it
				code = origErr.StatusCode
				if len(origErr.Fields) > 0 {
					message = origErr.Fields
				} else {
					message = origErr.Detail
				}
			} else {
				code = errBadGateway.Code
				message = errBadGateway.Message
				logger.Error("upstream error", origErr, contextSessionOrZero(ctx))
			}
		case *url.Error:
			code = errBadGateway.Code
			message = errBadGateway.Message
			logger.Error("upstream unreachable", origErr)
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), contextSessionOrZero(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func contextSessionOrZero(ctx echo.Context) session.Session {
	sess, _ := getContextSession(ctx)
	return sess
}
