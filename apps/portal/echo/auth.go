package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
)

const (
	sessionCookieName = "portal_session"
	contextSessionKey = "session"
	loginPath         = "/login"
)

// roleRedirects maps a role to the landing page the UI should load
// after login. Recomputed on every /me as well, so a role change takes
// effect on the next page load.
var roleRedirects = map[string]string{
	session.RoleStudent: "/student-dashboard",
	session.RoleFaculty: "/faculty/dashboard",
	session.RoleAdmin:   "/dashboard",
}

// Claims carries the portal session ID in a signed cookie; everything
// else about the user lives server-side in the session store.
type Claims struct {
	jwt.StandardClaims
}

// GenerateToken generates a signed JWT token string referencing the session.
func GenerateToken(sess session.Session) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   sess.ID,
			ExpiresAt: sess.ExpiresAt.Unix(),
			IssuedAt:  sess.CreatedAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(core.Conf.SecretKey))
	return ss, errors.Wrap(err, "signing token")
}

// parseToken verifies a session cookie value and returns the session ID.
func parseToken(raw string) (string, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(core.Conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}

func setSessionCookie(ctx echo.Context, token string, expires time.Time) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess, nil
	}
	return session.Session{}, errUnauthorized
}

type authApi struct {
	gw       *gateway.Client
	sessions session.ServiceInterface
	logger   core.Logger
}

func registerAuthAPI(app *echo.Echo, gw *gateway.Client, sessions session.ServiceInterface, logger core.Logger) {
	api := authApi{gw: gw, sessions: sessions, logger: logger}

	app.POST("/login", api.login)

	authed := sessionMiddleware(sessions)
	app.POST("/logout", api.logout, authed)
	app.GET("/me", api.me, authed)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.gw.Login(ctx.Request().Context(), data.Identifier, data.Password)
	if err != nil {
		if apiErr, ok := errors.Cause(err).(*gateway.APIError); ok && apiErr.ClientError() {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating upstream")
	}

	sess, err := api.sessions.Begin(ctx.Request().Context(), usr.ID, usr.DisplayName(), usr.Email, usr.Role)
	if err != nil {
		return errors.Wrap(err, "beginning session")
	}

	token, err := GenerateToken(sess)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	setSessionCookie(ctx, token, sess.ExpiresAt)

	return ctx.JSON(http.StatusOK, LoginResponse{
		User:     usr,
		Redirect: roleRedirects[sess.Role],
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	if err := api.sessions.End(ctx.Request().Context(), sess.ID); err != nil && errors.Cause(err) != session.ErrNotFound {
		return errors.Wrap(err, "ending session")
	}
	// best effort; the portal session is gone either way
	if err := api.gw.Logout(ctx.Request().Context()); err != nil {
		api.logger.Warn("upstream logout failed", err, sess)
	}

	clearSessionCookie(ctx)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) me(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MeResponse{
		Session:  sess,
		Redirect: roleRedirects[sess.Role],
	})
}

type (
	LoginRequest struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		User     gateway.AuthUser `json:"user"`
		Redirect string           `json:"redirect"`
	}

	MeResponse struct {
		Session  session.Session `json:"session"`
		Redirect string          `json:"redirect"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Identifier = core.CleanString(lr.Identifier, true /* lower */)
	return core.Validate.Struct(lr)
}
