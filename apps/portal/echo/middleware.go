package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core/session"
)

// sessionMiddleware resolves the session cookie against the store and
// gates the route on the given roles. The check runs on every request,
// so an ended or expired session loses access immediately.
func sessionMiddleware(svc session.ServiceInterface, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return deny(ctx, errUnauthorized)
			}
			sid, err := parseToken(cookie.Value)
			if err != nil {
				clearSessionCookie(ctx)
				return deny(ctx, errUnauthorized)
			}

			sess, err := svc.Get(ctx.Request().Context(), sid)
			if err != nil {
				switch errors.Cause(err) {
				case session.ErrNotFound:
					clearSessionCookie(ctx)
					return deny(ctx, errUnauthorized)
				case session.ErrExpired:
					clearSessionCookie(ctx)
					return deny(ctx, errSessionEnded)
				}
				return errors.Wrap(err, "getting session")
			}

			if len(roles) > 0 && !sess.HasRole(roles...) {
				return deny(ctx, errHttpForbidden)
			}

			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

// deny sends browsers back to the login page and returns a JSON error
// to API clients.
func deny(ctx echo.Context, herr *echo.HTTPError) error {
	if wantsHTML(ctx.Request()) {
		return ctx.Redirect(http.StatusSeeOther, loginPath)
	}
	return herr
}

func wantsHTML(req *http.Request) bool {
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
