package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unitrack/portal/core/session"
)

func TestLoginSetsSessionAndRedirect(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		wantRedirect string
	}{
		{"student", session.RoleStudent, "/student-dashboard"},
		{"faculty", session.RoleFaculty, "/faculty/dashboard"},
		{"admin", session.RoleAdmin, "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
				var payload map[string]string
				_ = json.NewDecoder(r.Body).Decode(&payload)
				assert.Equal(t, "rita@unitrack.test", payload["email"])
				assert.Empty(t, payload["username"])
				jsonHandler(http.StatusOK, `{"user": {"id": 7, "name": "Rita Banda", "email": "rita@unitrack.test", "role": "`+tt.role+`"}}`)(w, r)
			})
			srv, _, teardown := newTestServer(t, mux)
			defer teardown()

			req, rec := newRequest(http.MethodPost, "/login", []byte(`{"identifier": "Rita@unitrack.test", "password": "s3cret"}`))
			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)

			var res LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			assert.Equal(t, tt.wantRedirect, res.Redirect)
			assert.Equal(t, 7, res.User.ID)

			var cookie *http.Cookie
			for _, ck := range rec.Result().Cookies() {
				if ck.Name == sessionCookieName {
					cookie = ck
				}
			}
			if cookie == nil || cookie.Value == "" {
				t.Fatal("expected a session cookie")
			}

			// the cookie opens /me
			req, rec = newRequest(http.MethodGet, "/me")
			req.AddCookie(cookie)
			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			var me MeResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			assert.Equal(t, tt.role, me.Session.Role)
			assert.Equal(t, tt.wantRedirect, me.Redirect)
		})
	}
}

func TestLoginUsernameIdentifier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "rita01", payload["username"])
		assert.Empty(t, payload["email"])
		jsonHandler(http.StatusOK, `{"user": {"id": 7, "name": "Rita Banda", "email": "rita@unitrack.test", "role": "STUDENT"}}`)(w, r)
	})
	srv, _, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodPost, "/login", []byte(`{"identifier": "rita01", "password": "s3cret"}`))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", jsonHandler(http.StatusUnauthorized, `{"detail": "Invalid credentials"}`))
	srv, _, teardown := newTestServer(t, mux)
	defer teardown()

	req, rec := newRequest(http.MethodPost, "/login", []byte(`{"identifier": "rita01", "password": "nope"}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "invalid credentials"}`, rec.Body.String())
}

func TestLoginValidation(t *testing.T) {
	srv, _, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	req, rec := newRequest(http.MethodPost, "/login", []byte(`{"identifier": "rita01"}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password": "this field is required"}`, rec.Body.String())
}

func TestLogoutEndsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout/", jsonHandler(http.StatusNoContent, ""))
	srv, sessions, teardown := newTestServer(t, mux)
	defer teardown()

	cookie := sessionCookie(t, sessions, 7, session.RoleStudent)

	req, rec := newRequest(http.MethodPost, "/logout")
	req.AddCookie(cookie)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// the session is gone; the same cookie no longer opens /me
	req, rec = newRequest(http.MethodGet, "/me")
	req.AddCookie(cookie)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTamperedCookieRejected(t *testing.T) {
	srv, sessions, teardown := newTestServer(t, http.NewServeMux())
	defer teardown()

	cookie := sessionCookie(t, sessions, 7, session.RoleStudent)
	cookie.Value += "x"

	req, rec := newRequest(http.MethodGet, "/me")
	req.AddCookie(cookie)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
